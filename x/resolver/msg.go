package resolver

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// RegisterMsg sets the configuration of the caller.
type RegisterMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Routing  Routing         `json:"routing"`
	FeeRate  int32           `json:"fee_rate"`
}

var _ weave.Msg = (*RegisterMsg)(nil)

func (RegisterMsg) Path() string {
	return "resolver/register"
}

func (m *RegisterMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "Routing", m.Routing.Validate())
	err = errors.AppendField(err, "FeeRate", ValidateFeeRate(m.FeeRate))
	return err
}

func (m *RegisterMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *RegisterMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}
