package utils

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

func TestSavepoint(t *testing.T) {
	existing := []byte("locker:1")
	written := []byte("locker:2")
	failing := &weavetest.WriteHandler{Key: written, Value: []byte("funded"), Err: errors.ErrInsufficientAmount}
	passing := &weavetest.WriteHandler{Key: written, Value: []byte("funded")}

	cases := map[string]struct {
		save    Savepoint
		handler weave.Handler
		check   bool
		wantErr *errors.Error
		kept    bool
	}{
		"disabled keeps a failed check write": {
			save: NewSavepoint(), handler: failing, check: true,
			wantErr: errors.ErrInsufficientAmount, kept: true,
		},
		"check rollback": {
			save: NewSavepoint().OnCheck(), handler: failing, check: true,
			wantErr: errors.ErrInsufficientAmount,
		},
		"deliver rollback": {
			save: NewSavepoint().OnDeliver(), handler: failing,
			wantErr: errors.ErrInsufficientAmount,
		},
		"enabling both phases in any order": {
			save: NewSavepoint().OnDeliver().OnCheck(), handler: failing,
			wantErr: errors.ErrInsufficientAmount,
		},
		"check rollback leaves deliver alone": {
			save: NewSavepoint().OnCheck(), handler: failing,
			wantErr: errors.ErrInsufficientAmount, kept: true,
		},
		"success is written": {
			save: NewSavepoint().OnCheck().OnDeliver(), handler: passing,
			kept: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, db.Set(existing, []byte("locked")))

			var err error
			if tc.check {
				_, err = tc.save.Check(context.Background(), db, &weavetest.Tx{}, tc.handler)
			} else {
				_, err = tc.save.Deliver(context.Background(), db, &weavetest.Tx{}, tc.handler)
			}
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				assert.NoError(t, err)
			}

			has, err := db.Has(existing)
			require.NoError(t, err)
			assert.True(t, has, "writes made before the savepoint are kept")
			has, err = db.Has(written)
			require.NoError(t, err)
			assert.Equal(t, tc.kept, has)
		})
	}
}

func TestSavepointRollsBackPanic(t *testing.T) {
	db := store.MemStore()
	h := weavetest.Decorate(&weavetest.PanicHandler{}, NewSavepoint().OnDeliver())
	h = weavetest.Decorate(h, NewRecovery())

	_, err := h.Deliver(context.Background(), db, &weavetest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)

	inner := &weavetest.WriteHandler{Key: []byte("wallet:x"), Value: []byte("1"), Err: errors.ErrState}
	h = weavetest.Decorate(weavetest.Decorate(inner, NewSavepoint().OnDeliver()), NewRecovery())
	_, err = h.Deliver(context.Background(), db, &weavetest.Tx{})
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
	has, err := db.Has([]byte("wallet:x"))
	require.NoError(t, err)
	assert.False(t, has)
}
