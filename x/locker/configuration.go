package locker

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/gconf"
	"github.com/iov-one/lexlocker/weave"
)

const confPkg = "locker"

// Configuration is the genesis configuration of the ledger.
type Configuration struct {
	Metadata *weave.Metadata `json:"metadata"`
	// NativeTicker is the ticker of the native currency. Native value
	// must be attached to a deposit rather than pulled.
	NativeTicker string `json:"native_ticker"`
	// MaxDetailsLength limits the size of the locker annotation.
	MaxDetailsLength int32 `json:"max_details_length"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", c.Metadata.Validate())
	if !coin.IsCC(c.NativeTicker) {
		err = errors.AppendField(err, "NativeTicker", errors.Wrapf(errors.ErrCurrency, "%q", c.NativeTicker))
	}
	if c.MaxDetailsLength <= 0 {
		err = errors.AppendField(err, "MaxDetailsLength", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	return err
}

func (c *Configuration) Marshal() ([]byte, error) {
	return weave.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, c)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SaveConfiguration stores the ledger configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}
