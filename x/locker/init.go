package locker

import (
	"github.com/iov-one/lexlocker/gconf"
	"github.com/iov-one/lexlocker/weave"
)

// Initializer fulfils the Initializer interface to load the ledger
// configuration from the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the "locker" entry of the genesis "conf" section.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, confPkg, &conf)
}
