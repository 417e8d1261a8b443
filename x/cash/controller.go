package cash

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

// Controller is the functionality needed by cash.Handler and the
// extensions that move value between accounts.
// Extract this to an interface, so we can use the wallet logic
// anywhere a balance is needed.
type Controller interface {
	Balance(weave.ReadOnlyKVStore, weave.Address) (coin.Coins, error)
	MoveCoins(weave.KVStore, weave.Address, weave.Address, coin.Coin) error
	CoinMint(weave.KVStore, weave.Address, coin.Coin) error
}

// BaseController is a simple implementation of controller
// backed by the wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the cash bucket
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the given address. A missing
// wallet is reported as ErrNotFound.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error) {
	var w Wallet
	if err := c.bucket.One(db, addr, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s needs %s", src, amount)
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return errors.Wrap(err, "subtract")
	}
	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// Load the recipient after saving the sender, so a transfer to self
	// sees the reduced balance.
	recipient, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	recipient, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	_, err = c.bucket.Put(db, dest, recipient)
	return err
}

func (c BaseController) load(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	if err := c.bucket.One(db, addr, &w); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", addr)
		}
		return nil, err
	}
	return &w, nil
}

func (c BaseController) loadOrCreate(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}
