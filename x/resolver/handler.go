package resolver

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, reg Registry) {
	r.Handle(&RegisterMsg{}, NewRegisterHandler(auth, reg))
}

// RegisterQuery will register this bucket as "/resolvers"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register(BucketName, qr)
}

// RegisterHandler stores the configuration of the caller
type RegisterHandler struct {
	auth x.Authenticator
	reg  Registry
}

var _ weave.Handler = RegisterHandler{}

func NewRegisterHandler(auth x.Authenticator, reg Registry) RegisterHandler {
	return RegisterHandler{auth: auth, reg: reg}
}

func (h RegisterHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h RegisterHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	res, err := h.reg.Register(db, caller, msg.Routing, msg.FeeRate)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("resolver registered",
		"resolver", caller, "routing", res.Routing, "fee_rate", res.FeeRate)
	return &weave.DeliverResult{Data: caller}, nil
}

func (h RegisterHandler) validate(ctx weave.Context, tx weave.Tx) (*RegisterMsg, weave.Address, error) {
	var msg RegisterMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	return &msg, caller.Address(), nil
}
