package gconf

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// ReadStore is the part of weave.ReadOnlyKVStore that Load needs.
type ReadStore interface {
	Get(key []byte) ([]byte, error)
}

// Store is the part of weave.KVStore that Save needs.
type Store interface {
	ReadStore
	Set(key, value []byte) error
}

// Configuration is the settings singleton of one extension.
type Configuration interface {
	weave.Persistent
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and writes it as the configuration of pkg.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "configuration of %s", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal configuration of %s", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. A chain without one
// returns ErrNotFound.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no configuration of %s", pkg)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "unmarshal configuration of %s", pkg)
}

// InitConfig saves the genesis section conf.<pkg> as the configuration
// of pkg.
func InitConfig(db Store, opts weave.Options, pkg string, conf Configuration) error {
	var sections weave.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if sections[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no configuration of %s", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration of %s", pkg)
	}
	return Save(db, pkg, conf)
}
