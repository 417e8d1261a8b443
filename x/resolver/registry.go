package resolver

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

// Registry stores resolver configurations. The configuration of an
// address is only ever written by that address.
type Registry struct {
	bucket orm.ModelBucket
}

// NewRegistry returns a registry backed by given bucket
func NewRegistry(bucket orm.ModelBucket) Registry {
	return Registry{bucket: bucket}
}

// Register inserts or overwrites the configuration of the caller.
func (r Registry) Register(db weave.KVStore, caller weave.Address, routing Routing, feeRate int32) (*Resolver, error) {
	res := &Resolver{
		Metadata: &weave.Metadata{Schema: 1},
		Address:  caller,
		Routing:  routing,
		FeeRate:  feeRate,
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.bucket.Put(db, caller, res); err != nil {
		return nil, errors.Wrap(err, "save resolver")
	}
	return res, nil
}

// Resolver returns the configuration of given address, or ErrNotFound.
func (r Registry) Resolver(db weave.ReadOnlyKVStore, addr weave.Address) (*Resolver, error) {
	var res Resolver
	if err := r.bucket.One(db, addr, &res); err != nil {
		return nil, errors.Wrapf(err, "resolver %s", addr)
	}
	return &res, nil
}
