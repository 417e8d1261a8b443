package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestMultiRefKeepsLockersSorted(t *testing.T) {
	cases := map[string]struct {
		add     []int64
		remove  []int64
		wantErr int
		want    []int64
	}{
		"issue order":  {add: []int64{1, 2, 3}, want: []int64{1, 2, 3}},
		"any order":    {add: []int64{300, 2, 17}, want: []int64{2, 17, 300}},
		"duplicates":   {add: []int64{5, 5, 1, 5}, wantErr: 2, want: []int64{1, 5}},
		"removed":      {add: []int64{1, 2, 3}, remove: []int64{2}, want: []int64{1, 3}},
		"missing":      {add: []int64{1}, remove: []int64{4}, wantErr: 1, want: []int64{1}},
		"removed once": {add: []int64{7, 8}, remove: []int64{7, 7}, wantErr: 1, want: []int64{8}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var m MultiRef
			errs := 0
			for _, id := range tc.add {
				if err := m.Add(EncodeSequence(id)); err != nil {
					assert.IsErr(t, errors.ErrDuplicate, err)
					errs++
				}
			}
			for _, id := range tc.remove {
				if err := m.Remove(EncodeSequence(id)); err != nil {
					assert.IsErr(t, errors.ErrNotFound, err)
					errs++
				}
			}
			assert.Equal(t, tc.wantErr, errs)
			assert.Equal(t, len(tc.want), len(m.Refs))
			for i, id := range tc.want {
				assert.Equal(t, EncodeSequence(id), m.Refs[i])
			}
			for i := 1; i < len(m.Refs); i++ {
				if bytes.Compare(m.Refs[i-1], m.Refs[i]) >= 0 {
					t.Fatalf("refs out of order: %x", m.Refs)
				}
			}
		})
	}
}

func TestMultiRefCopyAndStore(t *testing.T) {
	m, err := NewMultiRef(EncodeSequence(2), EncodeSequence(1))
	assert.Nil(t, err)
	assert.Nil(t, m.Validate())

	raw, err := m.Marshal()
	assert.Nil(t, err)
	var loaded MultiRef
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, m.Refs, loaded.Refs)

	cpy := m.Copy().(*MultiRef)
	assert.Nil(t, cpy.Remove(EncodeSequence(1)))
	assert.Equal(t, 2, len(m.Refs))

	_, err = NewMultiRef(EncodeSequence(1), EncodeSequence(1))
	assert.IsErr(t, errors.ErrDuplicate, err)
	assert.IsErr(t, errors.ErrEmpty, new(MultiRef).Validate())
}
