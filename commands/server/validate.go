package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
)

// ValidateGenesis loads the app_state of every given genesis file into
// a throw away store. It returns the first initialization failure.
func ValidateGenesis(ini weave.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: cmd validate <path to genesis.json>...")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini weave.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		State weave.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
