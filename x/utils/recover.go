package utils

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// NewRecovery returns a decorator converting a handler panic into an
// ErrPanic error, so one bad transaction cannot halt the node.
func NewRecovery() weave.Decorator {
	return recovery{}
}

type recovery struct{}

func (recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (_ *weave.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (_ *weave.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
