package cash

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use weave.Address, so address in hex, not base64
type GenesisAccount struct {
	Address weave.Address `json:"address"`
	Coins   coin.Coins    `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		wallet, err := NewWallet(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if _, err := bucket.Put(kv, acct.Address, wallet); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
