package weave

// ReadOnlyKVStore reads state. Get returns nil for a missing key.
// Iterators cover [start, end), a nil bound leaving that side open, and
// must not overlap writes to their range until released.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Iterator(start, end []byte) (Iterator, error)
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes state. Callers must not modify key or value after
// passing them in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handlers operate on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks a key range. Next returns errors.ErrIteratorDone after
// the last pair. Release must always be called.
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can open a write layer on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a write layer. Reads see its pending writes. Write
// moves them to the parent store and Discard drops them. Layers nest, so
// a handler can roll back its own writes without losing those of the
// block.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persisted state. All changes go through a
// CacheWrap and become durable on Commit. After a crash
// LoadLatestVersion recovers the last complete commit.
type CommitKVStore interface {
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed state by its version and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
