package nft

import (
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	opts := weave.Options{
		"nfts": []byte(`[
			{"collection": "kitties", "id": "1", "owner": "b1ca7e78f74423ae01da3b51e676934d9105f282"},
			{"collection": "kitties", "id": "2", "owner": "b1ca7e78f74423ae01da3b51e676934d9105f282"}
		]`),
	}
	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	owner, err := NewController(NewBucket()).Owner(db, "kitties", []byte("2"))
	assert.Nil(t, err)
	assert.Equal(t, "B1CA7E78F74423AE01DA3B51E676934D9105F282", owner.String())
}

func TestGenesisDuplicate(t *testing.T) {
	opts := weave.Options{
		"nfts": []byte(`[
			{"collection": "kitties", "id": "1", "owner": "b1ca7e78f74423ae01da3b51e676934d9105f282"},
			{"collection": "kitties", "id": "1", "owner": "b1ca7e78f74423ae01da3b51e676934d9105f282"}
		]`),
	}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrDuplicate, err)
}
