package utils

import (
	"time"

	"github.com/iov-one/lexlocker/weave"
	"github.com/tendermint/tendermint/libs/log"
)

// NewLogging returns a decorator writing one line per processed
// transaction, with its route and how long the handler took. Failures are
// logged as errors. Successful checks go to debug and deliveries to info.
func NewLogging() weave.Decorator {
	return logging{}
}

type logging struct{}

func (logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	started := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := txLogger(ctx, tx, started)
	switch {
	case err != nil:
		l.Error("check failed", "err", err)
	default:
		l.Debug("checked", "log", res.Log)
	}
	return res, err
}

func (logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	started := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := txLogger(ctx, tx, started)
	switch {
	case err != nil:
		l.Error("deliver failed", "err", err)
	default:
		l.Info("delivered", "log", res.Log)
	}
	return res, err
}

func txLogger(ctx weave.Context, tx weave.Tx, started time.Time) log.Logger {
	return weave.GetLogger(ctx).With(
		"path", weave.GetPath(tx),
		"took", time.Since(started).String(),
	)
}
