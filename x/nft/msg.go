package nft

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// TransferMsg gives an item owned by the caller to another address.
type TransferMsg struct {
	Metadata    *weave.Metadata `json:"metadata"`
	Collection  string          `json:"collection"`
	ID          []byte          `json:"id"`
	Destination weave.Address   `json:"destination"`
}

var _ weave.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return "nft/transfer"
}

func (m *TransferMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "Collection", ValidateCollection(m.Collection))
	err = errors.AppendField(err, "ID", ValidateItemID(m.ID))
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	return err
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}
