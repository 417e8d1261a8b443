package nft

import (
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestController(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	assert.Nil(t, ctrl.Mint(db, "kitties", []byte{1}, alice))
	assert.IsErr(t, errors.ErrDuplicate, ctrl.Mint(db, "kitties", []byte{1}, bob))
	// same id in another collection is a different item
	assert.Nil(t, ctrl.Mint(db, "puppies", []byte{1}, bob))
	assert.IsErr(t, errors.ErrInput, ctrl.Mint(db, "Bad Name", []byte{1}, bob))

	owner, err := ctrl.Owner(db, "kitties", []byte{1})
	assert.Nil(t, err)
	assert.Equal(t, alice, owner)

	_, err = ctrl.Owner(db, "kitties", []byte{2})
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.IsErr(t, errors.ErrUnauthorized, ctrl.Transfer(db, "kitties", []byte{1}, bob, bob))
	assert.IsErr(t, errors.ErrNotFound, ctrl.Transfer(db, "kitties", []byte{9}, alice, bob))
	assert.IsErr(t, errors.ErrInput, ctrl.Transfer(db, "kitties", []byte{1}, alice, nil))
	assert.Nil(t, ctrl.Transfer(db, "kitties", []byte{1}, alice, bob))

	owner, err = ctrl.Owner(db, "kitties", []byte{1})
	assert.Nil(t, err)
	assert.Equal(t, bob, owner)

	var owned []Token
	assert.Nil(t, NewBucket().ByIndex(db, OwnerIndexName, bob, &owned))
	assert.Equal(t, 2, len(owned))

	var none []Token
	assert.Nil(t, NewBucket().ByIndex(db, OwnerIndexName, alice, &none))
	assert.Equal(t, 0, len(none))
}

func TestQueryByOwner(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	db := store.MemStore()
	assert.Nil(t, NewController(NewBucket()).Mint(db, "kitties", []byte("first"), alice))

	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/nfts/owner")
	if h == nil {
		t.Fatal("owner query not registered")
	}
	models, err := h.Query(db, weave.KeyQueryMod, alice)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))

	var tok Token
	assert.Nil(t, tok.Unmarshal(models[0].Value))
	assert.Equal(t, []byte("first"), tok.ID)
}
