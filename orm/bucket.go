package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// SeqID names the default primary key sequence of a bucket.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of one type under "<name>:<key>" and keeps its
// indexes up to date. Extensions use it through a ModelBucket.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]*index
}

var _ weave.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lower case letters or
// underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// Register serves the bucket under /<name> and every index under
// /<name>/<index>. An empty name defaults to the bucket name.
func (b Bucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
	for iname, idx := range b.indexes {
		r.Register("/"+name+"/"+iname, idx)
	}
}

// Query looks up one primary key or lists all keys with a prefix.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []weave.Model{weave.Pair(key, value)}, nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// DBKey returns a new slice holding the prefixed key.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...)
}

// Get returns nil when nothing is stored under key.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

// Parse loads a stored value into a fresh object.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, err
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes obj, updating all indexes.
func (b Bucket) Save(db weave.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the object under key from the bucket and its indexes.
func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) reindex(db weave.KVStore, key []byte, save Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil || (prev == nil && save == nil) {
		return err
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, save); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns the named counter of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of the bucket that also maintains the named
// index. Each indexed value may reference many objects. Reusing a name
// panics.
func (b Bucket) WithIndex(name string, indexer Indexer) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice", name))
	}
	indexes := map[string]*index{
		name: newIndex(b.name+"_"+name, indexer, b.DBKey),
	}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// GetIndexed returns the objects stored under value of the named index.
func (b Bucket) GetIndexed(db weave.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	keys, err := idx.Keys(db, value)
	if err != nil {
		return nil, err
	}
	var objs []Object
	for _, key := range keys {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
