package resolver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestRegister(t *testing.T) {
	alice := weavetest.NewCondition().Address()

	cases := map[string]struct {
		routing Routing
		feeRate int32
		wantErr *errors.Error
	}{
		"direct without fee": {routing: Direct, feeRate: 0},
		"pooled":             {routing: Pooled, feeRate: 20},
		"whole custody":      {routing: Direct, feeRate: MaxFeeRate},
		"fee too high":       {routing: Direct, feeRate: MaxFeeRate + 1, wantErr: errors.ErrInput},
		"negative fee":       {routing: Direct, feeRate: -1, wantErr: errors.ErrInput},
		"unknown routing":    {routing: 3, feeRate: 1, wantErr: errors.ErrInput},
		"missing routing":    {feeRate: 1, wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			reg := NewRegistry(NewBucket())
			_, err := reg.Register(db, alice, tc.routing, tc.feeRate)
			assert.IsErr(t, tc.wantErr, err)

			got, err := reg.Resolver(db, alice)
			if tc.wantErr != nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.routing, got.Routing)
			assert.Equal(t, tc.feeRate, got.FeeRate)
		})
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	db := store.MemStore()
	reg := NewRegistry(NewBucket())
	alice := weavetest.NewCondition().Address()

	_, err := reg.Register(db, alice, Pooled, 20)
	assert.Nil(t, err)
	_, err = reg.Register(db, alice, Direct, 500)
	assert.Nil(t, err)

	got, err := reg.Resolver(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, Direct, got.Routing)
	assert.Equal(t, int32(500), got.FeeRate)
}

func TestRegisterHandler(t *testing.T) {
	db := store.MemStore()
	reg := NewRegistry(NewBucket())
	alice := weavetest.NewCondition()
	tx := &weavetest.Tx{Msg: &RegisterMsg{Metadata: &weave.Metadata{Schema: 1}, Routing: Pooled, FeeRate: 20}}

	_, err := NewRegisterHandler(&weavetest.Auth{}, reg).Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	h := NewRegisterHandler(&weavetest.Auth{Signer: alice}, reg)
	_, err = h.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	res, err := h.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, []byte(alice.Address()), res.Data)

	got, err := reg.Resolver(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, Pooled, got.Routing)

	bad := &weavetest.Tx{Msg: &RegisterMsg{Metadata: &weave.Metadata{Schema: 1}, Routing: Pooled, FeeRate: 10001}}
	_, err = h.Deliver(context.Background(), db, bad)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRoutingJSON(t *testing.T) {
	var r []Routing
	assert.Nil(t, json.Unmarshal([]byte(`["direct", "Pooled", 1]`), &r))
	assert.Equal(t, []Routing{Direct, Pooled, Direct}, r)

	var bad Routing
	err := json.Unmarshal([]byte(`"vaulted"`), &bad)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestGenesis(t *testing.T) {
	opts := weave.Options{
		"resolvers": []byte(`[
			{"address": "b1ca7e78f74423ae01da3b51e676934d9105f282", "routing": "pooled", "fee_rate": 20}
		]`),
	}
	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	addr, err := weave.ParseAddress("b1ca7e78f74423ae01da3b51e676934d9105f282")
	assert.Nil(t, err)
	got, err := NewRegistry(NewBucket()).Resolver(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, Pooled, got.Routing)
	assert.Equal(t, int32(20), got.FeeRate)
}
