package weave

import (
	"context"
	"regexp"

	"github.com/iov-one/lexlocker/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block and chain data a handler may read. Block
// values are set once, so a decorator cannot rewrite them for the
// handlers it wraps.
type Context = context.Context

type ctxKey int

const (
	headerKey ctxKey = iota
	heightKey
	chainIDKey
	loggerKey
)

var (
	// DefaultLogger serves contexts without a logger.
	DefaultLogger = log.NewNopLogger()

	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// once panics if key already holds a value in ctx.
func once(ctx Context, key ctxKey, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic(errors.Wrapf(errors.ErrState, "context value %d already set", key))
	}
	return context.WithValue(ctx, key, value)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return once(ctx, headerKey, header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return once(ctx, heightKey, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithChainID panics for an invalid id.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id: %q", chainID))
	}
	return once(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain id is set. Every context built by the
// application has one.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds keyvals to every line logged through the returned
// context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
