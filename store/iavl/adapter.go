// Package iavl persists the ledger state in a versioned iavl tree on top of
// leveldb. Every commit produces a new tree version whose root hash is the
// app hash reported to tendermint.
package iavl

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistorySize is the number of committed versions kept on disk.
	DefaultHistorySize = 20
)

// CommitStore is a committable store backed by an iavl tree. Reads see the
// last committed version, writes go through Adapter or CacheWrap.
type CommitStore struct {
	tree *iavl.MutableTree
	// keep is the number of versions retained. Zero keeps all of them.
	keep int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens or creates the leveldb database name in dir.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, errors.Wrapf(errors.ErrDatabase, "open leveldb %q: %s", dir, err)
	}
	return newCommitStore(db), nil
}

// NewMemCommitStore returns a store keeping all versions in memory.
func NewMemCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
		keep: DefaultHistorySize,
	}
}

// Get reads key from the last committed version. A missing key reads as
// nil.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves the working tree as a new version and drops the version
// that falls out of the retained history.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if old := version - s.keep; s.keep > 0 && old > 0 {
		if err := s.tree.DeleteVersion(old); err != nil {
			return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "delete version %d: %s", old, err)
		}
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the newest complete version from disk.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion describes the version loaded or last committed.
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// Adapter exposes the working tree. Its writes become visible to Get only
// after Commit.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{s.tree}
}

// CacheWrap returns a cache over the working tree.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a adapter) Set(key, value []byte) error {
	// iavl rejects nil values.
	if value == nil {
		value = []byte{}
	}
	a.tree.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewJournal(a)
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewCache(a)
}

func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, true), nil
}

func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, false), nil
}

// collect loads the whole range into memory. Ranges queried by the
// application are bounded by bucket prefixes.
func (a adapter) collect(start, end []byte, ascending bool) store.Iterator {
	var pairs []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		pairs = append(pairs, store.Pair(key, value))
		return false
	})
	return store.IterateModels(pairs)
}
