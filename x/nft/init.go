package nft

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

const optKey = "nfts"

// GenesisToken is used to parse the json from genesis file. The id is
// given as a plain string.
type GenesisToken struct {
	Collection string        `json:"collection"`
	ID         string        `json:"id"`
	Owner      weave.Address `json:"owner"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis mints every listed item.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	ctrl := NewController(NewBucket())
	stream := opts.Stream(optKey)
	for i := 0; ; i++ {
		var t GenesisToken
		switch err := stream(&t); {
		case errors.ErrEmpty.Is(err):
			return nil
		case err != nil:
			return errors.Wrap(err, "cannot load token")
		}
		if err := ctrl.Mint(db, t.Collection, []byte(t.ID), t.Owner); err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
	}
}
