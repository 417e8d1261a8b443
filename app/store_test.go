package app

import (
	"context"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/store/iavl"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestStoreAppQuery(t *testing.T) {
	qr := weave.NewQueryRouter()
	qr.Register("/", orm.NewBucket("raw", nil))
	s := NewStoreApp("foo", iavl.NewMemCommitStore(), qr, context.Background())

	key := []byte("key")
	assert.Nil(t, s.DeliverStore().Set([]byte("raw:key"), []byte("value")))

	// Uncommitted state is not visible.
	res := s.Query(abci.RequestQuery{Path: "/", Data: key})
	assert.Equal(t, errors.SuccessABCICode, res.Code)
	var values ResultSet
	assert.Nil(t, values.Unmarshal(res.Value))
	assert.Equal(t, 0, len(values.Results))

	s.Commit()

	res = s.Query(abci.RequestQuery{Path: "/", Data: key})
	assert.Equal(t, errors.SuccessABCICode, res.Code)
	assert.Equal(t, int64(1), res.Height)
	var value Item
	assert.Nil(t, UnmarshalOneResult(res.Value, &value))
	assert.Equal(t, "value", string(value))

	res = s.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
}

func TestStoreAppInfo(t *testing.T) {
	s := NewStoreApp("lexlocker", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "lexlocker", info.Data)
	assert.Equal(t, int64(0), info.LastBlockHeight)

	assert.Nil(t, s.DeliverStore().Set([]byte("a"), []byte("b")))
	hash := s.Commit().Data
	info = s.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, hash, info.LastBlockAppHash)
}

// Item is a raw value that can be read from a result set.
type Item []byte

func (i *Item) Marshal() ([]byte, error) {
	return *i, nil
}

func (i *Item) Unmarshal(raw []byte) error {
	*i = append((*i)[:0], raw...)
	return nil
}
