package weave

import "github.com/iov-one/lexlocker/errors"

// Metadata is carried by every model and message. It declares the schema
// version of the serialized data.
type Metadata struct {
	Schema uint32
}

// Validate returns an error if the metadata does not declare a schema
// version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
