package nft

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&TransferMsg{}, NewTransferHandler(auth, control))
}

// RegisterQuery will register this bucket as "/nfts" and the owner
// index as "/nfts/owner"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register(BucketName, qr)
}

// TransferHandler moves an item owned by the caller
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = TransferHandler{}

func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{auth: auth, control: control}
}

func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Collection, msg.ID, owner, msg.Destination); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferMsg, weave.Address, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := h.control.Owner(db, msg.Collection, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, owner, nil
}
