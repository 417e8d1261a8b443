package vault

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/cash"
)

// Controller manages pooled balances.
type Controller interface {
	// Balance returns the coins credited to the owner. An owner that
	// was never credited has an empty balance.
	Balance(db weave.ReadOnlyKVStore, owner weave.Address) (coin.Coins, error)
	// Credit moves amount from the source wallet into the reserve and
	// credits it to the owner.
	Credit(db weave.KVStore, src, owner weave.Address, amount coin.Coin) error
	// Withdraw moves credited coins from the reserve back to the
	// owner's wallet.
	Withdraw(db weave.KVStore, owner weave.Address, amount coin.Coin) error
}

// BaseController keeps accounts in a bucket and pooled coins in the
// reserve cash wallet.
type BaseController struct {
	bucket orm.ModelBucket
	cash   cash.Controller
}

var _ Controller = BaseController{}

// NewController returns a vault controller moving coins with given cash
// controller
func NewController(bucket orm.ModelBucket, cash cash.Controller) BaseController {
	return BaseController{bucket: bucket, cash: cash}
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, owner weave.Address) (coin.Coins, error) {
	acc, err := c.account(db, owner)
	if err != nil {
		return nil, err
	}
	return acc.Coins, nil
}

func (c BaseController) Credit(db weave.KVStore, src, owner weave.Address, amount coin.Coin) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := c.cash.MoveCoins(db, src, ReserveAddress, amount); err != nil {
		return errors.Wrap(err, "fund reserve")
	}
	acc, err := c.account(db, owner)
	if err != nil {
		return err
	}
	if acc.Coins, err = acc.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "credit")
	}
	if _, err := c.bucket.Put(db, owner, acc); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}

func (c BaseController) Withdraw(db weave.KVStore, owner weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	acc, err := c.account(db, owner)
	if err != nil {
		return err
	}
	if !acc.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s credited less than %s", owner, amount)
	}
	if acc.Coins, err = acc.Coins.Subtract(amount); err != nil {
		return errors.Wrap(err, "debit")
	}
	if _, err := c.bucket.Put(db, owner, acc); err != nil {
		return errors.Wrap(err, "save account")
	}
	if err := c.cash.MoveCoins(db, ReserveAddress, owner, amount); err != nil {
		return errors.Wrap(err, "drain reserve")
	}
	return nil
}

func (c BaseController) account(db weave.ReadOnlyKVStore, owner weave.Address) (*Account, error) {
	var acc Account
	switch err := c.bucket.One(db, owner, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}
