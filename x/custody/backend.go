package custody

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/cash"
	"github.com/iov-one/lexlocker/x/nft"
)

// Backend moves assets between owners and custody accounts.
type Backend interface {
	// Pull moves the asset from its owner into custody.
	Pull(db weave.KVStore, from, custody weave.Address, a Asset) error
	// Push moves the asset out of custody to the recipient.
	Push(db weave.KVStore, custody, to weave.Address, a Asset) error
}

// Custodian dispatches transfers by asset kind. Native currency and
// fungible tokens are cash coins, items are nft tokens.
type Custodian struct {
	cash cash.Controller
	nft  nft.Controller
}

var _ Backend = Custodian{}

// NewCustodian returns a backend moving coins and items with given
// controllers.
func NewCustodian(c cash.Controller, n nft.Controller) Custodian {
	return Custodian{cash: c, nft: n}
}

func (c Custodian) Pull(db weave.KVStore, from, custody weave.Address, a Asset) error {
	return c.move(db, from, custody, a)
}

func (c Custodian) Push(db weave.KVStore, custody, to weave.Address, a Asset) error {
	return c.move(db, custody, to, a)
}

func (c Custodian) move(db weave.KVStore, src, dest weave.Address, a Asset) error {
	switch a.Kind {
	case Native, Fungible:
		if a.Amount == nil {
			return errors.Wrap(errors.ErrAmount, "missing amount")
		}
		return c.cash.MoveCoins(db, src, dest, *a.Amount)
	case NonFungible:
		return c.nft.Transfer(db, a.Ref, a.ItemID, src, dest)
	default:
		return errors.Wrapf(errors.ErrInput, "unknown asset kind %d", a.Kind)
	}
}
