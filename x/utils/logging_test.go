package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "locker/resolve"}}

	ok := &weavetest.Handler{DeliverResult: weave.DeliverResult{Log: "resolved"}}
	_, err := NewLogging().Deliver(ctx, store.MemStore(), tx, ok)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "resolved")
	assert.Contains(t, buf.String(), "locker/resolve")

	buf.Reset()
	bad := &weavetest.Handler{DeliverErr: errors.ErrUnauthorized}
	_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, bad)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, buf.String(), "unauthorized")
}
