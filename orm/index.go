package orm

import (
	"bytes"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// Indexer returns the value an object is indexed under. A nil value
// leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// index maps a value computed from each object to the set of primary keys
// of all objects sharing that value. Sets are stored as a MultiRef under
// "_i.<bucket>_<name>:<value>".
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
	// refKey turns a primary key to the key of the object in the store
	refKey func([]byte) []byte
}

var _ weave.QueryHandler = (*index)(nil)

func newIndex(name string, indexer Indexer, refKey func([]byte) []byte) *index {
	return &index{
		name:    name,
		prefix:  []byte("_i." + name + ":"),
		indexer: indexer,
		refKey:  refKey,
	}
}

func (i *index) dbKey(value []byte) []byte {
	return append(append([]byte(nil), i.prefix...), value...)
}

// Update moves the primary key of an object between index values. A nil
// prev is an insert and a nil save is a delete.
func (i *index) Update(db weave.KVStore, prev, save Object) error {
	var from, to []byte
	var key []byte
	var err error
	if prev != nil {
		key = prev.Key()
		if from, err = i.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if save != nil {
		if key != nil && !bytes.Equal(key, save.Key()) {
			return errors.Wrap(errors.ErrImmutable, "primary key changed")
		}
		key = save.Key()
		if to, err = i.indexer(save); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if key == nil {
		return errors.Wrap(errors.ErrHuman, "index update without an object")
	}
	if prev != nil && save != nil && bytes.Equal(from, to) {
		return nil
	}
	if err := i.edit(db, from, func(refs *MultiRef) error { return refs.Remove(key) }); err != nil {
		return err
	}
	return i.edit(db, to, func(refs *MultiRef) error { return refs.Add(key) })
}

// edit applies fn to the set stored under value. Empty sets are deleted.
func (i *index) edit(db weave.KVStore, value []byte, fn func(*MultiRef) error) error {
	if len(value) == 0 {
		return nil
	}
	key := i.dbKey(value)
	refs, err := i.load(db, key)
	if err != nil {
		return err
	}
	if err := fn(refs); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i *index) load(db weave.ReadOnlyKVStore, key []byte) (*MultiRef, error) {
	raw, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	var refs MultiRef
	if raw != nil {
		if err := refs.Unmarshal(raw); err != nil {
			return nil, errors.Wrapf(err, "index %s", i.name)
		}
	}
	return &refs, nil
}

// Keys returns the primary keys indexed under value.
func (i *index) Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := i.load(db, i.dbKey(value))
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the objects indexed under a value, or under every value
// starting with the given prefix.
func (i *index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	var keys [][]byte
	switch mod {
	case weave.KeyQueryMod:
		found, err := i.Keys(db, data)
		if err != nil {
			return nil, err
		}
		keys = found
	case weave.PrefixQueryMod:
		sets, err := queryPrefix(db, i.dbKey(data))
		if err != nil {
			return nil, err
		}
		for _, set := range sets {
			var refs MultiRef
			if err := refs.Unmarshal(set.Value); err != nil {
				return nil, errors.Wrapf(err, "index %s", i.name)
			}
			keys = append(keys, refs.Refs...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}

	var res []weave.Model
	for _, k := range keys {
		key := i.refKey(k)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, weave.Pair(key, value))
	}
	return res, nil
}
