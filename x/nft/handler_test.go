package nft

import (
	"context"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/iov-one/lexlocker/weavetest/assert"
)

func TestTransferHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer    weave.Condition
		msg       *TransferMsg
		wantErr   *errors.Error
		wantOwner weave.Address
	}{
		"owner transfers": {
			signer:    alice,
			msg:       &TransferMsg{Metadata: &weave.Metadata{Schema: 1}, Collection: "kitties", ID: []byte{1}, Destination: bob.Address()},
			wantOwner: bob.Address(),
		},
		"stranger cannot transfer": {
			signer:    bob,
			msg:       &TransferMsg{Metadata: &weave.Metadata{Schema: 1}, Collection: "kitties", ID: []byte{1}, Destination: bob.Address()},
			wantErr:   errors.ErrUnauthorized,
			wantOwner: alice.Address(),
		},
		"unknown item": {
			signer:    alice,
			msg:       &TransferMsg{Metadata: &weave.Metadata{Schema: 1}, Collection: "kitties", ID: []byte{2}, Destination: bob.Address()},
			wantErr:   errors.ErrNotFound,
			wantOwner: alice.Address(),
		},
		"missing destination": {
			signer:    alice,
			msg:       &TransferMsg{Metadata: &weave.Metadata{Schema: 1}, Collection: "kitties", ID: []byte{1}},
			wantErr:   errors.ErrInput,
			wantOwner: alice.Address(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			assert.Nil(t, ctrl.Mint(db, "kitties", []byte{1}, alice.Address()))

			h := NewTransferHandler(&weavetest.Auth{Signer: tc.signer}, ctrl)
			tx := &weavetest.Tx{Msg: tc.msg}
			_, err := h.Check(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)

			owner, err := ctrl.Owner(db, "kitties", []byte{1})
			assert.Nil(t, err)
			assert.Equal(t, tc.wantOwner, owner)
		})
	}
}
