package orm

import (
	"reflect"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound for a missing key and ErrType when dest cannot hold
	// the stored model.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex appends all models stored under key of the named index to
	// dest, a pointer to a slice of models or of model pointers.
	ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) error

	// Put validates and stores m, overwriting any model under key. An
	// empty key takes the next value of the ID sequence, which is
	// returned.
	Put(db weave.KVStore, key []byte, m Model) ([]byte, error)

	// Delete returns ErrNotFound for a missing key.
	Delete(db weave.KVStore, key []byte) error

	// Has returns ErrNotFound for a missing key.
	Has(db weave.KVStore, key []byte) error

	// Register serves the bucket and its indexes under /<name>.
	Register(name string, r weave.QueryRouter)
}

// ModelSlicePtr is a pointer to a slice of models.
type ModelSlicePtr interface{}

// ModelBucketOption configures a bucket in NewModelBucket.
type ModelBucketOption func(mb *modelBucket)

// WithIndex adds an index of the given name.
func WithIndex(name string, indexer Indexer) ModelBucketOption {
	return func(mb *modelBucket) { mb.b = mb.b.WithIndex(name, indexer) }
}

// WithIDSequence replaces the sequence used to generate keys.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) { mb.ids = s }
}

// NewModelBucket returns a bucket for models of the same type as m.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{b: b, ids: b.Sequence(SeqID), model: reflect.TypeOf(m).Elem()}
	for _, opt := range opts {
		opt(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	ids   Sequence
	model reflect.Type
}

func (mb *modelBucket) Register(name string, r weave.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	switch {
	case err != nil:
		return err
	case obj == nil || obj.Value() == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.b.Name(), key)
	}
	stored := reflect.ValueOf(obj.Value())
	if !stored.Type().AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "cannot load %s into %T", stored.Type(), dest)
	}
	reflect.ValueOf(dest).Elem().Set(stored.Elem())
	return nil
}

func (mb *modelBucket) ByIndex(db weave.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) error {
	slice, byPtr, err := mb.sliceOf(dest)
	if err != nil {
		return err
	}
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return err
	}
	for _, obj := range objs {
		if obj == nil || obj.Value() == nil {
			continue
		}
		v := reflect.ValueOf(obj.Value())
		if !byPtr {
			v = v.Elem()
		}
		slice.Set(reflect.Append(slice, v))
	}
	return nil
}

// sliceOf returns the slice dest points to and whether it holds pointers.
func (mb *modelBucket) sliceOf(dest ModelSlicePtr) (reflect.Value, bool, error) {
	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.Type().Elem().Kind() != reflect.Slice {
		return reflect.Value{}, false, errors.Wrapf(errors.ErrType, "want a pointer to a slice, got %T", dest)
	}
	if ptr.IsNil() {
		return reflect.Value{}, false, errors.Wrap(errors.ErrImmutable, "nil destination")
	}
	elem := ptr.Type().Elem().Elem()
	byPtr := elem.Kind() == reflect.Ptr
	if byPtr {
		elem = elem.Elem()
	}
	if elem != mb.model {
		return reflect.Value{}, false, errors.Wrapf(errors.ErrType, "%s holds %s, not %s", mb.b.Name(), mb.model, elem)
	}
	return ptr.Elem(), byPtr, nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) ([]byte, error) {
	if t := reflect.TypeOf(m); t.Kind() != reflect.Ptr || t.Elem() != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot store %T", mb.b.Name(), m)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		next, err := mb.ids.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "next id")
		}
		key = next
	}
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return nil, errors.Wrap(err, "save")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Has(db weave.KVStore, key []byte) error {
	if key == nil {
		return errors.ErrNotFound
	}
	switch ok, err := db.Has(mb.b.DBKey(key)); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %x", mb.b.Name(), key)
	}
	return nil
}
