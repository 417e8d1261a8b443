package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

// Suite checks a CacheableKVStore implementation with the data layout of
// the application: locker records, the locker sequence and the wallets of
// custody accounts share one store and lockers are listed by prefix.
type Suite struct {
	open Opener
}

// Opener returns an empty store and a function releasing it.
type Opener func() (base CacheableKVStore, cleanup func())

// NewSuite returns a suite running against stores created by open.
func NewSuite(open Opener) *Suite {
	return &Suite{open: open}
}

var (
	lockerPrefix = []byte("lockers:")
	lockerSeqKey = []byte("_s.lockers:id")
)

func lockerKey(id uint64) []byte {
	key := make([]byte, len(lockerPrefix)+8)
	copy(key, lockerPrefix)
	binary.BigEndian.PutUint64(key[len(lockerPrefix):], id)
	return key
}

func custodyKey(id uint64) []byte {
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, id)
	addr := weave.NewCondition("locker", "seq", seq).Address()
	return append([]byte("cash:"), addr...)
}

// prefixEnd returns the smallest key greater than all keys starting with
// prefix. The prefixes used here never end with 0xff.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}

// AssertGetHas checks that Get and Has agree on key. A nil want means the
// key must be missing.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

// Layers follows a locker through deposit and release, each in its own
// cache layer, and checks what every layer can see.
func (s *Suite) Layers(t *testing.T) {
	base, cleanup := s.open()
	defer cleanup()

	seq := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	assert.Nil(t, base.Set(lockerSeqKey, seq))
	assert.Nil(t, base.Set(lockerKey(1), []byte("active")))
	assert.Nil(t, base.Set(custodyKey(1), []byte("1000 DAI")))

	deposit := base.CacheWrap()
	AssertGetHas(t, deposit, lockerKey(1), []byte("active"))
	assert.Nil(t, deposit.Set(lockerSeqKey, []byte{0, 0, 0, 0, 0, 0, 0, 2}))
	assert.Nil(t, deposit.Set(lockerKey(2), []byte("active")))
	assert.Nil(t, deposit.Set(custodyKey(2), []byte("chairs/1")))
	AssertGetHas(t, deposit, lockerKey(2), []byte("active"))
	AssertGetHas(t, base, lockerKey(2), nil)
	AssertGetHas(t, base, lockerSeqKey, seq)

	assert.Nil(t, deposit.Write())
	AssertGetHas(t, base, lockerKey(2), []byte("active"))
	AssertGetHas(t, base, custodyKey(2), []byte("chairs/1"))

	failed := base.CacheWrap()
	assert.Nil(t, failed.Set(lockerKey(3), []byte("active")))
	assert.Nil(t, failed.Delete(custodyKey(1)))
	failed.Discard()
	AssertGetHas(t, base, lockerKey(3), nil)
	AssertGetHas(t, base, custodyKey(1), []byte("1000 DAI"))

	observer := base.CacheWrap()
	release := base.CacheWrap()
	assert.Nil(t, release.Set(lockerKey(1), []byte("released")))
	assert.Nil(t, release.Delete(custodyKey(1)))
	AssertGetHas(t, observer, lockerKey(1), []byte("active"))
	AssertGetHas(t, release, custodyKey(1), nil)

	assert.Nil(t, release.Write())
	AssertGetHas(t, observer, lockerKey(1), []byte("released"))
	AssertGetHas(t, observer, custodyKey(1), nil)
	AssertGetHas(t, observer, custodyKey(2), []byte("chairs/1"))
}

// put is a locker write used to build a fixture. An empty value deletes
// the locker.
type put struct {
	id    uint64
	value string
}

func del(id uint64) put {
	return put{id: id}
}

func apply(t testing.TB, kv SetDeleter, puts []put) {
	t.Helper()
	for _, p := range puts {
		if p.value == "" {
			assert.Nil(t, kv.Delete(lockerKey(p.id)))
		} else {
			assert.Nil(t, kv.Set(lockerKey(p.id), []byte(p.value)))
		}
	}
}

// Shadowing checks that writes and deletes of a layer hide the parent
// when listing lockers in both directions.
func (s *Suite) Shadowing(t *testing.T) {
	cases := map[string]struct {
		parent []put
		child  []put
		want   []put
	}{
		"child only": {
			child: []put{{3, "c"}, {1, "a"}, {2, "b"}},
			want:  []put{{1, "a"}, {2, "b"}, {3, "c"}},
		},
		"parent only": {
			parent: []put{{2, "b"}, {1, "a"}},
			want:   []put{{1, "a"}, {2, "b"}},
		},
		"child fills a gap": {
			parent: []put{{1, "a"}, {3, "c"}},
			child:  []put{{2, "b"}},
			want:   []put{{1, "a"}, {2, "b"}, {3, "c"}},
		},
		"child overwrites": {
			parent: []put{{1, "a"}, {2, "b"}, {3, "c"}},
			child:  []put{{1, "A"}, {2, "B"}, {4, "d"}},
			want:   []put{{1, "A"}, {2, "B"}, {3, "c"}, {4, "d"}},
		},
		"child deletes": {
			parent: []put{{1, "a"}, {3, "c"}, {4, "d"}},
			child:  []put{del(1), del(2), del(4)},
			want:   []put{{3, "c"}},
		},
		"child deletes everything": {
			parent: []put{{1, "a"}, {2, "b"}},
			child:  []put{del(2), del(1)},
		},
		"child rewrites a deleted locker": {
			parent: []put{{1, "a"}},
			child:  []put{del(1), {1, "again"}},
			want:   []put{{1, "again"}},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.open()
			defer cleanup()
			assert.Nil(t, base.Set(custodyKey(9), []byte("wallet")))
			apply(t, base, tc.parent)

			child := base.CacheWrap()
			apply(t, child, tc.child)

			var want []Model
			for _, p := range tc.want {
				want = append(want, Pair(lockerKey(p.id), []byte(p.value)))
			}
			end := prefixEnd(lockerPrefix)
			assert.Equal(t, want, scan(t, child, lockerPrefix, end, false))
			assert.Equal(t, reversed(want), scan(t, child, lockerPrefix, end, true))

			assert.Nil(t, child.Write())
			assert.Equal(t, want, scan(t, base, lockerPrefix, end, false))
		})
	}
}

// Scan writes lockers with random updates and deletes to a store and a
// layer above it, and lists them over several ranges.
func (s *Suite) Scan(t *testing.T) {
	const lockers = 60

	base, cleanup := s.open()
	defer cleanup()
	rnd := rand.New(rand.NewSource(7))
	state := make(map[uint64][]byte)

	for id := uint64(1); id <= lockers; id++ {
		value := []byte(fmt.Sprintf("locker %d", id))
		assert.Nil(t, base.Set(lockerKey(id), value))
		assert.Nil(t, base.Set(custodyKey(id), []byte("wallet")))
		state[id] = value
	}
	assert.Nil(t, base.Set(lockerSeqKey, lockerKey(lockers)[len(lockerPrefix):]))
	for i := 0; i < 15; i++ {
		id := uint64(rnd.Intn(lockers) + 1)
		assert.Nil(t, base.Delete(lockerKey(id)))
		delete(state, id)
	}

	child := base.CacheWrap()
	for i := 0; i < 40; i++ {
		id := uint64(rnd.Intn(lockers+20) + 1)
		if rnd.Intn(3) == 0 {
			assert.Nil(t, child.Delete(lockerKey(id)))
			delete(state, id)
			continue
		}
		value := []byte(fmt.Sprintf("locker %d rev %d", id, i))
		assert.Nil(t, child.Set(lockerKey(id), value))
		state[id] = value
	}

	var all []Model
	for id, value := range state {
		all = append(all, Pair(lockerKey(id), value))
	}
	sort.Slice(all, func(i, j int) bool { return bytes.Compare(all[i].Key, all[j].Key) < 0 })

	ranges := []struct{ start, end []byte }{
		{lockerPrefix, prefixEnd(lockerPrefix)},
		{lockerKey(20), prefixEnd(lockerPrefix)},
		{lockerPrefix, lockerKey(50)},
		{lockerKey(10), lockerKey(30)},
		{lockerKey(25), lockerKey(26)},
	}
	check := func(kv ReadOnlyKVStore) {
		for _, r := range ranges {
			want := within(all, r.start, r.end)
			assert.Equal(t, want, scan(t, kv, r.start, r.end, false))
			assert.Equal(t, reversed(want), scan(t, kv, r.start, r.end, true))
		}
	}
	check(child)
	assert.Nil(t, child.Write())
	check(base)
}

func scan(t testing.TB, kv ReadOnlyKVStore, start, end []byte, descending bool) []Model {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if descending {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	var found []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return found
		}
		assert.Nil(t, err)
		found = append(found, Pair(key, value))
	}
}

func within(models []Model, start, end []byte) []Model {
	var res []Model
	for _, m := range models {
		if bytes.Compare(m.Key, start) >= 0 && bytes.Compare(m.Key, end) < 0 {
			res = append(res, m)
		}
	}
	return res
}

func reversed(models []Model) []Model {
	var res []Model
	for i := len(models) - 1; i >= 0; i-- {
		res = append(res, models[i])
	}
	return res
}
