package cash

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x"
)

// RegisterRoutes routes SendMsg to a handler moving coins between wallets.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery exposes wallets under /wallets.
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// NewSendHandler returns a handler that moves coins out of a wallet owned
// by one of the transaction signers.
func NewSendHandler(auth x.Authenticator, control Controller) weave.Handler {
	return &sendHandler{auth: auth, control: control}
}

type sendHandler struct {
	auth    x.Authenticator
	control Controller
}

func (h *sendHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *sendHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("coins sent",
		"source", msg.Source, "destination", msg.Destination, "amount", msg.Amount.String())
	return &weave.DeliverResult{}, nil
}

// authorized loads the message and requires the source wallet owner to be
// among the signers.
func (h *sendHandler) authorized(ctx weave.Context, tx weave.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", msg.Source)
	}
	return &msg, nil
}
