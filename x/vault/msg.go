package vault

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// WithdrawMsg moves coins credited to the caller back into the caller's
// wallet.
type WithdrawMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Amount   *coin.Coin      `json:"amount"`
}

var _ weave.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return "vault/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		err = errors.AppendField(err, "Amount", m.Amount.Validate())
	}
	return err
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}
