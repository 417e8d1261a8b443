package locker

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/custody"
)

const (
	pathDeposit = "locker/deposit"
	pathLock    = "locker/lock"
	pathRelease = "locker/release"
	pathResolve = "locker/resolve"
)

// DepositMsg creates a new locker funded by the signer.
type DepositMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Receiver weave.Address   `json:"receiver"`
	Resolver weave.Address   `json:"resolver"`
	Asset    custody.Asset   `json:"asset"`
	Details  string          `json:"details"`
	// Value is the native currency sent along with the message.
	Value *coin.Coin `json:"value,omitempty"`
}

var _ weave.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDeposit
}

func (m *DepositMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "Receiver", m.Receiver.Validate())
	err = errors.AppendField(err, "Resolver", m.Resolver.Validate())
	err = errors.AppendField(err, "Asset", m.Asset.Validate())
	if m.Value != nil {
		err = errors.AppendField(err, "Value", m.Value.Validate())
	}
	return err
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}

// LockMsg flags a locker as disputed.
type LockMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	LockerID uint64          `json:"locker_id"`
}

var _ weave.Msg = (*LockMsg)(nil)

func (LockMsg) Path() string {
	return pathLock
}

func (m *LockMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "LockerID", validateID(m.LockerID))
	return err
}

func (m *LockMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *LockMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}

// ReleaseMsg pays the custody to the receiver.
type ReleaseMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	LockerID uint64          `json:"locker_id"`
}

var _ weave.Msg = (*ReleaseMsg)(nil)

func (ReleaseMsg) Path() string {
	return pathRelease
}

func (m *ReleaseMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "LockerID", validateID(m.LockerID))
	return err
}

func (m *ReleaseMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *ReleaseMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}

// ResolveMsg distributes the custody as decided by the resolver.
type ResolveMsg struct {
	Metadata       *weave.Metadata `json:"metadata"`
	LockerID       uint64          `json:"locker_id"`
	DepositorAward *coin.Coin      `json:"depositor_award,omitempty"`
	ReceiverAward  *coin.Coin      `json:"receiver_award,omitempty"`
	ItemAward      Party           `json:"item_award,omitempty"`
	// Details replaces the locker annotation unless empty.
	Details string `json:"details"`
}

var _ weave.Msg = (*ResolveMsg)(nil)

func (ResolveMsg) Path() string {
	return pathResolve
}

func (m *ResolveMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", m.Metadata.Validate())
	err = errors.AppendField(err, "LockerID", validateID(m.LockerID))
	if m.DepositorAward != nil {
		err = errors.AppendField(err, "DepositorAward", m.DepositorAward.Validate())
	}
	if m.ReceiverAward != nil {
		err = errors.AppendField(err, "ReceiverAward", m.ReceiverAward.Validate())
	}
	if m.ItemAward != 0 {
		err = errors.AppendField(err, "ItemAward", m.ItemAward.Validate())
	}
	return err
}

func (m *ResolveMsg) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *ResolveMsg) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}

func validateID(id uint64) error {
	if id == 0 {
		return errors.ErrEmpty
	}
	return nil
}
