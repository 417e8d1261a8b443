package locker

import (
	"encoding/binary"

	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/custody"
	"github.com/iov-one/lexlocker/x/resolver"
)

const (
	// BucketName is where lockers are stored
	BucketName = "lockers"

	DepositorIndex = "depositor"
	ReceiverIndex  = "receiver"
	ResolverIndex  = "resolver"
)

// Status is the stage of a locker. Any status but Active is terminal.
type Status int32

const (
	Active   Status = 1
	Released Status = 2
	Resolved Status = 3
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Released:
		return "released"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// IsTerminal returns true once the locker can no longer change.
func (s Status) IsTerminal() bool {
	return s != Active
}

// Party selects a side of the escrow.
type Party int32

const (
	Depositor Party = 1
	Receiver  Party = 2
)

// Validate returns an error unless p names depositor or receiver.
func (p Party) Validate() error {
	switch p {
	case Depositor, Receiver:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "party %d", p)
}

// Locker is a single escrow record.
type Locker struct {
	Metadata  *weave.Metadata `json:"metadata"`
	ID        uint64          `json:"id"`
	Depositor weave.Address   `json:"depositor"`
	Receiver  weave.Address   `json:"receiver"`
	Resolver  weave.Address   `json:"resolver"`
	Asset     custody.Asset   `json:"asset"`
	Details   string          `json:"details"`
	Locked    bool            `json:"locked"`
	Status    Status          `json:"status"`
	// Custody is the account holding the asset while the locker is
	// active.
	Custody weave.Address `json:"custody"`
	// Routing and FeeRate are the resolver configuration taken when the
	// locker was created.
	Routing resolver.Routing `json:"routing"`
	FeeRate int32            `json:"fee_rate"`
	// Resolution outcome. Coin awards are set for fungible assets,
	// ItemAward for an item.
	DepositorAward *coin.Coin `json:"depositor_award"`
	ReceiverAward  *coin.Coin `json:"receiver_award"`
	ResolverFee    *coin.Coin `json:"resolver_fee"`
	ItemAward      Party      `json:"item_award"`
}

var _ orm.Model = (*Locker)(nil)

// IsNonFungible returns true if the locker holds a single item.
func (l *Locker) IsNonFungible() bool {
	return l.Asset.IsNonFungible()
}

func (l *Locker) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", l.Metadata.Validate())
	if l.ID == 0 {
		err = errors.AppendField(err, "ID", errors.ErrEmpty)
	}
	err = errors.AppendField(err, "Depositor", l.Depositor.Validate())
	err = errors.AppendField(err, "Receiver", l.Receiver.Validate())
	err = errors.AppendField(err, "Resolver", l.Resolver.Validate())
	err = errors.AppendField(err, "Asset", l.Asset.Validate())
	err = errors.AppendField(err, "Custody", l.Custody.Validate())
	switch l.Status {
	case Active, Released, Resolved:
	default:
		err = errors.AppendField(err, "Status", errors.Wrapf(errors.ErrState, "status %d", l.Status))
	}
	err = errors.AppendField(err, "Routing", l.Routing.Validate())
	err = errors.AppendField(err, "FeeRate", resolver.ValidateFeeRate(l.FeeRate))
	if l.ItemAward != 0 {
		err = errors.AppendField(err, "ItemAward", l.ItemAward.Validate())
	}
	return err
}

func (l *Locker) Copy() orm.CloneableData {
	cpy := *l
	cpy.Metadata = l.Metadata.Copy()
	cpy.Depositor = append(weave.Address(nil), l.Depositor...)
	cpy.Receiver = append(weave.Address(nil), l.Receiver...)
	cpy.Resolver = append(weave.Address(nil), l.Resolver...)
	cpy.Custody = append(weave.Address(nil), l.Custody...)
	cpy.Asset = l.Asset.Copy()
	cpy.DepositorAward = l.DepositorAward.Clone()
	cpy.ReceiverAward = l.ReceiverAward.Clone()
	cpy.ResolverFee = l.ResolverFee.Clone()
	return &cpy
}

func (l *Locker) Marshal() ([]byte, error) {
	return weave.Marshal(l)
}

func (l *Locker) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, l)
}

// LockerKey returns the primary key of the locker with given id.
func LockerKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// CustodyAddress returns the account holding the asset of the locker
// stored under given key.
func CustodyAddress(key []byte) weave.Address {
	return custody.Address("locker", key)
}

// NewBucket returns a bucket of lockers indexed by every party.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Locker{},
		orm.WithIndex(DepositorIndex, partyIndex(func(l *Locker) weave.Address { return l.Depositor })),
		orm.WithIndex(ReceiverIndex, partyIndex(func(l *Locker) weave.Address { return l.Receiver })),
		orm.WithIndex(ResolverIndex, partyIndex(func(l *Locker) weave.Address { return l.Resolver })),
	)
}

func partyIndex(party func(*Locker) weave.Address) orm.Indexer {
	return func(obj orm.Object) ([]byte, error) {
		if obj == nil {
			return nil, errors.Wrap(orm.ErrInvalidIndex, "nil")
		}
		l, ok := obj.Value().(*Locker)
		if !ok {
			return nil, errors.Wrapf(orm.ErrInvalidIndex, "unsupported type %T", obj.Value())
		}
		return party(l), nil
	}
}
