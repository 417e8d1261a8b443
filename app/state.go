package app

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// chainIDKey is outside of every bucket namespace.
const chainIDKey = "_wv:chainID"

// state is the committed store with two write layers above it. deliver
// collects the writes of the current block. check runs mempool
// transactions on top of the last commit and is thrown away on Commit.
type state struct {
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

func loadState(db weave.CommitKVStore) (*state, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	s := &state{committed: db}
	s.open()
	return s, nil
}

func (s *state) open() {
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
}

func (s *state) version() (weave.CommitID, error) {
	return s.committed.LatestVersion()
}

// commit persists the block and opens fresh layers.
func (s *state) commit() (weave.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "flush block")
	}
	s.check.Discard()
	id, err := s.committed.Commit()
	if err != nil {
		return id, err
	}
	s.open()
	return id, nil
}

func loadChainID(db weave.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get([]byte(chainIDKey))
	return string(raw), err
}

// saveChainID stores the chain id once. It cannot be changed afterwards.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch taken, err := db.Has([]byte(chainIDKey)); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case taken:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(db.Set([]byte(chainIDKey), []byte(chainID)), "save chain id")
}
