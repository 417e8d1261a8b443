package store

import (
	"github.com/iov-one/lexlocker/errors"
)

// modelIter walks a fixed list of models.
type modelIter struct {
	models []Model
}

// IterateModels returns an iterator yielding models in the given order.
func IterateModels(models []Model) Iterator {
	return &modelIter{models: models}
}

func (m *modelIter) Next() (key, value []byte, err error) {
	if len(m.models) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	head := m.models[0]
	m.models = m.models[1:]
	return head.Key, head.Value, nil
}

func (m *modelIter) Release() {
	m.models = nil
}

// nullStore holds nothing and drops every write. MemStore caches on top
// of it.
type nullStore struct{}

var _ KVStore = nullStore{}

func (nullStore) Get([]byte) ([]byte, error)  { return nil, nil }
func (nullStore) Has([]byte) (bool, error)    { return false, nil }
func (nullStore) Set(key, value []byte) error { return nil }
func (nullStore) Delete(key []byte) error     { return nil }
func (n nullStore) NewBatch() Batch           { return NewJournal(n) }

func (nullStore) Iterator(start, end []byte) (Iterator, error) {
	return IterateModels(nil), nil
}

func (nullStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return IterateModels(nil), nil
}

// Journal records writes and replays them on Write. Replay is not atomic,
// so a journal must only target in-memory stores or a tree that is
// committed separately.
type Journal struct {
	target SetDeleter
	ops    []journalOp
}

type journalOp struct {
	key    []byte
	value  []byte
	remove bool
}

var _ Batch = (*Journal)(nil)

// NewJournal returns an empty journal flushing into target.
func NewJournal(target SetDeleter) *Journal {
	return &Journal{target: target}
}

func (j *Journal) Set(key, value []byte) error {
	j.ops = append(j.ops, journalOp{key: key, value: value})
	return nil
}

func (j *Journal) Delete(key []byte) error {
	j.ops = append(j.ops, journalOp{key: key, remove: true})
	return nil
}

// Len returns the number of pending writes.
func (j *Journal) Len() int {
	return len(j.ops)
}

// Write replays all pending writes and empties the journal.
func (j *Journal) Write() error {
	defer j.reset()
	for _, op := range j.ops {
		var err error
		if op.remove {
			err = j.target.Delete(op.key)
		} else {
			err = j.target.Set(op.key, op.value)
		}
		if err != nil {
			return errors.Wrapf(err, "replay %q", op.key)
		}
	}
	return nil
}

func (j *Journal) reset() {
	j.ops = nil
}
