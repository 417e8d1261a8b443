package store

import (
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weavetest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

var suite = NewSuite(func() (CacheableKVStore, func()) {
	return MemStore(), func() {}
})

func TestCacheLayers(t *testing.T)    { suite.Layers(t) }
func TestCacheShadowing(t *testing.T) { suite.Shadowing(t) }
func TestCacheScan(t *testing.T)      { suite.Scan(t) }

func TestNestedCache(t *testing.T) {
	Convey("Given a memory store with one locker", t, func() {
		db := MemStore()
		So(db.Set(lockerKey(1), []byte("active")), ShouldBeNil)

		Convey("A nested layer flushes only into its parent", func() {
			outer := db.CacheWrap()
			inner := outer.CacheWrap()
			So(inner.Set(lockerKey(1), []byte("released")), ShouldBeNil)
			So(inner.Write(), ShouldBeNil)

			val, err := outer.Get(lockerKey(1))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "released")
			val, err = db.Get(lockerKey(1))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "active")

			So(outer.Write(), ShouldBeNil)
			val, err = db.Get(lockerKey(1))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "released")
		})

		Convey("Writing a discarded layer changes nothing", func() {
			cache := db.CacheWrap()
			So(cache.Delete(lockerKey(1)), ShouldBeNil)
			cache.Discard()
			So(cache.Write(), ShouldBeNil)

			has, err := db.Has(lockerKey(1))
			So(err, ShouldBeNil)
			So(has, ShouldBeTrue)
		})
	})
}

func TestJournalKeepsOrder(t *testing.T) {
	db := MemStore()
	j := NewJournal(db)
	assert.Nil(t, j.Set(custodyKey(1), []byte("1000 DAI")))
	assert.Nil(t, j.Delete(custodyKey(1)))
	assert.Nil(t, j.Set(lockerKey(1), []byte("released")))
	assert.Equal(t, 3, j.Len())

	AssertGetHas(t, db, lockerKey(1), nil)
	assert.Nil(t, j.Write())
	assert.Equal(t, 0, j.Len())
	AssertGetHas(t, db, custodyKey(1), nil)
	AssertGetHas(t, db, lockerKey(1), []byte("released"))
}

func TestIterateModels(t *testing.T) {
	models := []Model{
		Pair(lockerKey(1), []byte("a")),
		Pair(lockerKey(2), []byte("b")),
	}
	it := IterateModels(models)
	for _, want := range models {
		key, value, err := it.Next()
		assert.Nil(t, err)
		assert.Equal(t, want, Pair(key, value))
	}
	_, _, err := it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)

	it = IterateModels(models)
	it.Release()
	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestReleaseBeforeDone(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set(lockerKey(1), []byte("a")))
	cache := db.CacheWrap()
	assert.Nil(t, cache.Set(lockerKey(2), []byte("b")))

	it, err := cache.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	key, _, err := it.Next()
	assert.Nil(t, err)
	assert.Equal(t, lockerKey(2), key)
	it.Release()

	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
	// the store stays writable once released
	assert.Nil(t, db.Delete(lockerKey(1)))
}
