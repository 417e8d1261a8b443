package vault

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&WithdrawMsg{}, NewWithdrawHandler(auth, control))
}

// RegisterQuery will register this bucket as "/vaults"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register(BucketName, qr)
}

// WithdrawHandler pays credited value out to the caller
type WithdrawHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = WithdrawHandler{}

func NewWithdrawHandler(auth x.Authenticator, control Controller) WithdrawHandler {
	return WithdrawHandler{auth: auth, control: control}
}

func (h WithdrawHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h WithdrawHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Withdraw(db, owner, *msg.Amount); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h WithdrawHandler) validate(ctx weave.Context, tx weave.Tx) (*WithdrawMsg, weave.Address, error) {
	var msg WithdrawMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	return &msg, caller.Address(), nil
}
