package store

import (
	"bytes"

	"github.com/google/btree"
)

// treeDegree is the branching factor of every cache layer.
const treeDegree = 2

// entry is a write held by a cache layer. A deleted entry hides whatever
// the parent holds under the same key.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

// Less orders entries by key.
func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// Cache keeps writes in a btree above a parent store. Reads are served
// from the cached writes first and fall through to the parent. Nothing
// reaches the parent before Write.
type Cache struct {
	writes  *btree.BTree
	parent  ReadOnlyKVStore
	journal *Journal
}

var _ KVCacheWrap = (*Cache)(nil)

// NewCache returns an empty cache layer over parent.
func NewCache(parent KVStore) *Cache {
	return &Cache{
		writes:  btree.New(treeDegree),
		parent:  parent,
		journal: NewJournal(parent),
	}
}

// MemStore returns a store backed by nothing but memory.
func MemStore() CacheableKVStore {
	return NewCache(nullStore{})
}

func (c *Cache) lookup(key []byte) (*entry, bool) {
	it := c.writes.Get(&entry{key: key})
	if it == nil {
		return nil, false
	}
	return it.(*entry), true
}

// Get returns nil when the key is missing or was deleted in this layer.
func (c *Cache) Get(key []byte) ([]byte, error) {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c *Cache) Has(key []byte) (bool, error) {
	if e, ok := c.lookup(key); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c *Cache) Set(key, value []byte) error {
	c.writes.ReplaceOrInsert(&entry{key: key, value: value})
	return c.journal.Set(key, value)
}

func (c *Cache) Delete(key []byte) error {
	c.writes.ReplaceOrInsert(&entry{key: key, deleted: true})
	return c.journal.Delete(key)
}

// NewBatch returns a journal that flushes into this layer.
func (c *Cache) NewBatch() Batch {
	return NewJournal(c)
}

// CacheWrap stacks another layer that flushes into this one.
func (c *Cache) CacheWrap() KVCacheWrap {
	return NewCache(c)
}

// Write replays all writes on the parent in the order they were made and
// empties the layer.
func (c *Cache) Write() error {
	err := c.journal.Write()
	c.Discard()
	return err
}

// Discard drops every pending write.
func (c *Cache) Discard() {
	c.writes.Clear(false)
	c.journal.reset()
}

// Iterator walks [start, end) in ascending key order. Nil bounds are open.
func (c *Cache) Iterator(start, end []byte) (Iterator, error) {
	below, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIter(c.ascend(start, end), below, false)
}

// ReverseIterator walks [start, end) in descending key order.
func (c *Cache) ReverseIterator(start, end []byte) (Iterator, error) {
	below, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	cached := c.ascend(start, end)
	for i, j := 0, len(cached)-1; i < j; i, j = i+1, j-1 {
		cached[i], cached[j] = cached[j], cached[i]
	}
	return newMergeIter(cached, below, true)
}
