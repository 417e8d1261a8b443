package cash

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

const maxMemoSize int = 128

// SendMsg moves coins from the source wallet to the destination.
type SendMsg struct {
	Metadata    *weave.Metadata `json:"metadata"`
	Source      weave.Address   `json:"source"`
	Destination weave.Address   `json:"destination"`
	Amount      *coin.Coin      `json:"amount"`
	Memo        string          `json:"memo"`
}

var _ weave.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		err = errors.AppendField(err, "Amount", errors.Wrapf(errors.ErrAmount, "non-positive: %v", m.Amount))
	} else {
		err = errors.AppendField(err, "Amount", m.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return err
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}
