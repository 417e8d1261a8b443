package vault

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

// BucketName is where vault accounts are stored
const BucketName = "vaults"

// ReserveAddress is the cash wallet holding all pooled coins.
var ReserveAddress = weave.NewCondition("vault", "reserve", []byte("pool")).Address()

// Account is the share of the reserve owned by an address.
type Account struct {
	Metadata *weave.Metadata `json:"metadata"`
	Coins    coin.Coins      `json:"coins"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := a.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := a.Coins.Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	if !a.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative coins")
	}
	return nil
}

func (a *Account) Copy() orm.CloneableData {
	return &Account{
		Metadata: a.Metadata.Copy(),
		Coins:    a.Coins.Clone(),
	}
}

func (a *Account) Marshal() ([]byte, error) {
	return weave.Marshal(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, a)
}

// NewBucket returns a bucket of vault accounts keyed by owner address
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{})
}
