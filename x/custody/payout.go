package custody

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/vault"
)

// Payout moves value out of custody to a beneficiary.
type Payout interface {
	Disburse(db weave.KVStore, custody, to weave.Address, a Asset) error
}

// Direct pays the beneficiary through the backend.
type Direct struct {
	backend Backend
}

var _ Payout = Direct{}

func NewDirect(b Backend) Direct {
	return Direct{backend: b}
}

func (d Direct) Disburse(db weave.KVStore, custody, to weave.Address, a Asset) error {
	return d.backend.Push(db, custody, to, a)
}

// Pooled credits fungible value to the beneficiary's vault account.
// The vault pools fungible value only, so items are paid directly.
type Pooled struct {
	backend Backend
	vault   vault.Controller
}

var _ Payout = Pooled{}

func NewPooled(b Backend, v vault.Controller) Pooled {
	return Pooled{backend: b, vault: v}
}

func (p Pooled) Disburse(db weave.KVStore, custody, to weave.Address, a Asset) error {
	if a.IsNonFungible() {
		return p.backend.Push(db, custody, to, a)
	}
	if a.Amount == nil {
		return errors.Wrap(errors.ErrAmount, "missing amount")
	}
	return p.vault.Credit(db, custody, to, *a.Amount)
}
