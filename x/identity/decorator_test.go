package identity

import (
	"context"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callerTx struct {
	weavetest.Tx
	caller weave.Condition
}

func (tx *callerTx) GetCaller() weave.Condition {
	return tx.caller
}

// captureHandler records the conditions visible to it
type captureHandler struct {
	seen []weave.Condition
}

func (h *captureHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h.seen = Authenticate{}.GetConditions(ctx)
	return &weave.CheckResult{}, nil
}

func (h *captureHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.seen = Authenticate{}.GetConditions(ctx)
	return &weave.DeliverResult{}, nil
}

func TestDecorator(t *testing.T) {
	alice := weavetest.NewCondition()

	cases := map[string]struct {
		dec     Decorator
		tx      weave.Tx
		wantErr *errors.Error
		want    []weave.Condition
	}{
		"caller is bound": {
			dec:  NewDecorator(),
			tx:   &callerTx{caller: alice},
			want: []weave.Condition{alice},
		},
		"missing caller is rejected": {
			dec:     NewDecorator(),
			tx:      &callerTx{},
			wantErr: errors.ErrUnauthorized,
		},
		"tx without caller support is rejected": {
			dec:     NewDecorator(),
			tx:      &weavetest.Tx{},
			wantErr: errors.ErrUnauthorized,
		},
		"missing caller allowed": {
			dec: NewDecorator().AllowMissing(),
			tx:  &callerTx{},
		},
		"custody condition cannot be claimed": {
			dec:     NewDecorator(),
			tx:      &callerTx{caller: weave.NewCondition("locker", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 1})},
			wantErr: errors.ErrUnauthorized,
		},
		"vault reserve cannot be claimed": {
			dec:     NewDecorator(),
			tx:      &callerTx{caller: weave.NewCondition("vault", "reserve", []byte("pool"))},
			wantErr: errors.ErrUnauthorized,
		},
		"other key type": {
			dec:     NewDecorator(),
			tx:      &callerTx{caller: weave.NewCondition("sigs", "secp256", []byte{1, 2, 3})},
			wantErr: errors.ErrUnauthorized,
		},
		"malformed caller": {
			dec:     NewDecorator(),
			tx:      &callerTx{caller: weave.Condition("no-slashes")},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			var h captureHandler
			_, err := tc.dec.Check(ctx, db, tc.tx, &h)
			require.True(t, tc.wantErr.Is(err), "check: %+v", err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, h.seen)
			}

			h = captureHandler{}
			_, err = tc.dec.Deliver(ctx, db, tc.tx, &h)
			require.True(t, tc.wantErr.Is(err), "deliver: %+v", err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, h.seen)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	var auth Authenticate
	ctx := context.Background()
	assert.Empty(t, auth.GetConditions(ctx))
	assert.False(t, auth.HasAddress(ctx, alice.Address()))

	ctx = withCaller(ctx, alice)
	assert.True(t, auth.HasAddress(ctx, alice.Address()))
	assert.False(t, auth.HasAddress(ctx, bob.Address()))
}
