package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// MultiRef is a sorted set of primary keys. Indexes store one per indexed
// value.
type MultiRef struct {
	Refs [][]byte
}

var _ CloneableData = (*MultiRef)(nil)

// NewMultiRef returns a set holding refs.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := &MultiRef{}
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool { return bytes.Compare(m.Refs[i], ref) >= 0 })
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Add inserts ref. A ref already in the set is ErrDuplicate.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.search(ref)
	if found {
		return errors.Wrapf(errors.ErrDuplicate, "ref %x", ref)
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove deletes ref. A ref missing from the set is ErrNotFound.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.search(ref)
	if !found {
		return errors.Wrapf(errors.ErrNotFound, "ref %x", ref)
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

func (m *MultiRef) Marshal() ([]byte, error) {
	return weave.Marshal(m)
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, m)
}

// Copy returns a set sharing the refs but not the slice holding them.
func (m *MultiRef) Copy() CloneableData {
	return &MultiRef{Refs: append([][]byte(nil), m.Refs...)}
}

// Validate rejects an empty set.
func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no refs")
	}
	return nil
}
