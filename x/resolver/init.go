package resolver

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

const optKey = "resolvers"

// GenesisResolver is used to parse the json from genesis file
type GenesisResolver struct {
	Address weave.Address `json:"address"`
	Routing Routing       `json:"routing"`
	FeeRate int32         `json:"fee_rate"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis registers every listed resolver.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	reg := NewRegistry(NewBucket())
	stream := opts.Stream(optKey)
	for i := 0; ; i++ {
		var r GenesisResolver
		switch err := stream(&r); {
		case errors.ErrEmpty.Is(err):
			return nil
		case err != nil:
			return errors.Wrap(err, "cannot load resolver")
		}
		if _, err := reg.Register(db, r.Address, r.Routing, r.FeeRate); err != nil {
			return errors.Wrapf(err, "resolver %d", i)
		}
	}
}
