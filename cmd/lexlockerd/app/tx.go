package app

import (
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/cash"
	"github.com/iov-one/lexlocker/x/identity"
	"github.com/iov-one/lexlocker/x/locker"
	"github.com/iov-one/lexlocker/x/nft"
	"github.com/iov-one/lexlocker/x/resolver"
	"github.com/iov-one/lexlocker/x/vault"
)

// Tx is the transaction of the lexlocker application. The caller is
// authenticated by the transport before the transaction reaches us.
type Tx struct {
	Caller weave.Condition `json:"caller"`
	Sum    Sum             `json:"sum"`
}

// Sum holds the message of a transaction. Exactly one field is set.
type Sum struct {
	SendMsg     *cash.SendMsg         `json:"send_msg,omitempty"`
	TransferMsg *nft.TransferMsg      `json:"transfer_msg,omitempty"`
	WithdrawMsg *vault.WithdrawMsg    `json:"withdraw_msg,omitempty"`
	RegisterMsg *resolver.RegisterMsg `json:"register_msg,omitempty"`
	DepositMsg  *locker.DepositMsg    `json:"deposit_msg,omitempty"`
	LockMsg     *locker.LockMsg       `json:"lock_msg,omitempty"`
	ReleaseMsg  *locker.ReleaseMsg    `json:"release_msg,omitempty"`
	ResolveMsg  *locker.ResolveMsg    `json:"resolve_msg,omitempty"`
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ identity.CallerTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	err := tx.Unmarshal(bz)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTx wraps given message into a transaction sent by caller.
// It panics on a message type the application does not route.
func NewTx(caller weave.Condition, msg weave.Msg) *Tx {
	tx := &Tx{Caller: caller}
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.Sum.SendMsg = m
	case *nft.TransferMsg:
		tx.Sum.TransferMsg = m
	case *vault.WithdrawMsg:
		tx.Sum.WithdrawMsg = m
	case *resolver.RegisterMsg:
		tx.Sum.RegisterMsg = m
	case *locker.DepositMsg:
		tx.Sum.DepositMsg = m
	case *locker.LockMsg:
		tx.Sum.LockMsg = m
	case *locker.ReleaseMsg:
		tx.Sum.ReleaseMsg = m
	case *locker.ResolveMsg:
		tx.Sum.ResolveMsg = m
	default:
		panic("unsupported message: " + msg.Path())
	}
	return tx
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	return weave.ExtractMsgFromSum(&tx.Sum)
}

// GetCaller returns the pre-authenticated caller condition.
func (tx *Tx) GetCaller() weave.Condition {
	return tx.Caller
}

func (tx *Tx) Marshal() ([]byte, error) {
	return weave.Marshal(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, tx)
}
