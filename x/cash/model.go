package cash

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the set of coins kept under an address.
// Coins are sorted by ticker, with no duplicates and no zero values.
type Wallet struct {
	Metadata *weave.Metadata `json:"metadata"`
	Coins    coin.Coins      `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

// NewWallet returns a wallet holding the given coins
func NewWallet(coins ...coin.Coin) (*Wallet, error) {
	cs, err := coin.CombineCoins(coins...)
	if err != nil {
		return nil, err
	}
	return &Wallet{Metadata: &weave.Metadata{Schema: 1}, Coins: cs}, nil
}

// Validate requires that all coins are in alphabetical order
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := w.Coins.Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	if !w.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative coins")
	}
	return nil
}

// Copy makes a new wallet with the same coins
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Coins:    w.Coins.Clone(),
	}
}

// Marshal serializes the wallet
func (w *Wallet) Marshal() ([]byte, error) {
	return weave.Marshal(w)
}

// Unmarshal loads the wallet from its binary form
func (w *Wallet) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, w)
}

// NewBucket returns a bucket for managing wallets, keyed by address
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
