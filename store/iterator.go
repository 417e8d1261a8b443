package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/lexlocker/errors"
)

// ascend lists the cached entries within [start, end).
func (c *Cache) ascend(start, end []byte) []*entry {
	var found []*entry
	visit := func(it btree.Item) bool {
		found = append(found, it.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.writes.Ascend(visit)
	case start == nil:
		c.writes.AscendLessThan(&entry{key: end}, visit)
	case end == nil:
		c.writes.AscendGreaterOrEqual(&entry{key: start}, visit)
	default:
		c.writes.AscendRange(&entry{key: start}, &entry{key: end}, visit)
	}
	return found
}

// mergeIter combines the entries of one cache layer with the iterator of
// the layer below. Cached entries win over parent entries with the same
// key and deleted ones are skipped.
type mergeIter struct {
	cached  []*entry
	below   Iterator
	head    *entry // next parent entry, nil once the parent is exhausted
	reverse bool
}

var _ Iterator = (*mergeIter)(nil)

func newMergeIter(cached []*entry, below Iterator, reverse bool) (*mergeIter, error) {
	m := &mergeIter{cached: cached, below: below, reverse: reverse}
	if err := m.pull(); err != nil {
		below.Release()
		return nil, err
	}
	return m, nil
}

func (m *mergeIter) pull() error {
	key, value, err := m.below.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.head = nil
		return nil
	}
	if err != nil {
		return err
	}
	m.head = &entry{key: key, value: value}
	return nil
}

// first reports whether key a is visited before key b.
func (m *mergeIter) first(a, b []byte) bool {
	if m.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

func (m *mergeIter) Next() (key, value []byte, err error) {
	for {
		head := m.head
		if len(m.cached) == 0 || (head != nil && m.first(head.key, m.cached[0].key)) {
			if head == nil {
				return nil, nil, errors.ErrIteratorDone
			}
			if err := m.pull(); err != nil {
				return nil, nil, err
			}
			return head.key, head.value, nil
		}

		e := m.cached[0]
		m.cached = m.cached[1:]
		if head != nil && bytes.Equal(head.key, e.key) {
			if err := m.pull(); err != nil {
				return nil, nil, err
			}
		}
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

func (m *mergeIter) Release() {
	m.below.Release()
	m.cached = nil
	m.head = nil
}
