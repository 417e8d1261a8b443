package orm

import (
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"bucket":       {[]byte("cash:"), []byte("cash;")},
		"single byte":  {[]byte{79}, []byte{80}},
		"everything":   {nil, nil},
		"carry":        {[]byte{17, 28, 255}, []byte{17, 29}},
		"double carry": {[]byte{15, 42, 255, 255}, []byte{15, 43}},
		"no upper end": {[]byte{255, 255}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.prefix, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func queryStore(t *testing.T) weave.KVStore {
	db := store.MemStore()
	for _, key := range []string{"lockers:a", "lockers:b", "lockersx", "cash:a", "_s.lockers:id"} {
		assert.Nil(t, db.Set([]byte(key), []byte(key)))
	}
	return db
}

func TestQueryPrefix(t *testing.T) {
	db := queryStore(t)
	cases := map[string]struct {
		prefix string
		want   []string
	}{
		"one bucket":     {"lockers:", []string{"lockers:a", "lockers:b"}},
		"shared start":   {"lockers", []string{"lockers:a", "lockers:b", "lockersx"}},
		"single":         {"cash:", []string{"cash:a"}},
		"nothing stored": {"nfts:", nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := queryPrefix(db, []byte(tc.prefix))
			assert.Nil(t, err)
			assert.Equal(t, len(tc.want), len(res))
			for i, key := range tc.want {
				assert.Equal(t, weave.Pair([]byte(key), []byte(key)), res[i])
			}
		})
	}
}

func TestRawQuery(t *testing.T) {
	db := queryStore(t)
	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/")
	if h == nil {
		t.Fatal("no raw query handler")
	}

	res, err := h.Query(db, weave.KeyQueryMod, []byte("_s.lockers:id"))
	assert.Nil(t, err)
	assert.Equal(t, []weave.Model{weave.Pair([]byte("_s.lockers:id"), []byte("_s.lockers:id"))}, res)

	res, err = h.Query(db, weave.KeyQueryMod, []byte("lockers:c"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, weave.PrefixQueryMod, []byte("lockers:"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = h.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}
