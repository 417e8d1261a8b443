package cash

import (
	"context"
	"testing"

	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	eth := coin.NewCoin(100, 0, "ETH")
	more := coin.NewCoin(300, 0, "ETH")

	cases := map[string]struct {
		signer     weave.Condition
		initial    *coin.Coin
		msg        weave.Msg
		wantCheck  *errors.Error
		wantDeliv  *errors.Error
		wantRemain coin.Coins
	}{
		"invalid message": {
			signer:    alice,
			msg:       &SendMsg{Metadata: &weave.Metadata{Schema: 1}},
			wantCheck: errors.ErrAmount,
			wantDeliv: errors.ErrAmount,
		},
		"missing signature": {
			msg:       &SendMsg{Metadata: &weave.Metadata{Schema: 1}, Amount: &eth, Source: alice.Address(), Destination: bob.Address()},
			wantCheck: errors.ErrUnauthorized,
			wantDeliv: errors.ErrUnauthorized,
		},
		"sender has no account": {
			signer:    alice,
			msg:       &SendMsg{Metadata: &weave.Metadata{Schema: 1}, Amount: &eth, Source: alice.Address(), Destination: bob.Address()},
			wantDeliv: errors.ErrInsufficientAmount,
		},
		"sender got cash": {
			signer:     alice,
			initial:    &more,
			msg:        &SendMsg{Metadata: &weave.Metadata{Schema: 1}, Amount: &eth, Source: alice.Address(), Destination: bob.Address()},
			wantRemain: coin.Coins{coin.NewCoin(200, 0, "ETH")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &weavetest.Auth{Signer: tc.signer}
			ctrl := NewController(NewBucket())
			h := NewSendHandler(auth, ctrl)

			db := store.MemStore()
			if tc.initial != nil {
				assert.Nil(t, ctrl.CoinMint(db, alice.Address(), *tc.initial))
			}
			tx := &weavetest.Tx{Msg: tc.msg}

			_, err := h.Check(context.Background(), db, tx)
			assert.IsErr(t, tc.wantCheck, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantDeliv, err)

			if tc.wantRemain != nil {
				got, err := ctrl.Balance(db, alice.Address())
				assert.Nil(t, err)
				assert.Equal(t, tc.wantRemain, got)
				got, err = ctrl.Balance(db, bob.Address())
				assert.Nil(t, err)
				assert.Equal(t, coin.Coins{eth}, got)
			}
		})
	}
}
