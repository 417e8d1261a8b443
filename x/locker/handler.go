package locker

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x"
	"github.com/tendermint/tendermint/libs/common"
)

// TagKey is the key of the tag carrying the locker key.
const TagKey = "locker"

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ledger Ledger) {
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, ledger: ledger})
	r.Handle(&LockMsg{}, LockHandler{auth: auth, ledger: ledger})
	r.Handle(&ReleaseMsg{}, ReleaseHandler{auth: auth, ledger: ledger})
	r.Handle(&ResolveMsg{}, ResolveHandler{auth: auth, ledger: ledger})
}

// RegisterQuery will register this bucket as "/lockers"
// and the party indexes under it
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register(BucketName, qr)
}

// DepositHandler creates lockers
type DepositHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ weave.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg DepositMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver pulls the asset into custody and returns
// the key of the new locker as data
func (h DepositHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg DepositMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	id, err := h.ledger.Deposit(ctx, db, caller, DepositRequest{
		Receiver: msg.Receiver,
		Resolver: msg.Resolver,
		Asset:    msg.Asset,
		Details:  msg.Details,
		Attached: msg.Value,
	})
	if err != nil {
		return nil, err
	}
	return lockerResult(id), nil
}

// LockHandler marks lockers as disputed
type LockHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ weave.Handler = LockHandler{}

func (h LockHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg LockMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h LockHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg LockMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Lock(ctx, db, caller, msg.LockerID); err != nil {
		return nil, err
	}
	return lockerResult(msg.LockerID), nil
}

// ReleaseHandler lets the depositor pay the receiver
type ReleaseHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ weave.Handler = ReleaseHandler{}

func (h ReleaseHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg ReleaseMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h ReleaseHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ReleaseMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Release(ctx, db, caller, msg.LockerID); err != nil {
		return nil, err
	}
	return lockerResult(msg.LockerID), nil
}

// ResolveHandler applies the resolver decision
type ResolveHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ weave.Handler = ResolveHandler{}

func (h ResolveHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg ResolveMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h ResolveHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ResolveMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	err = h.ledger.Resolve(ctx, db, caller, msg.LockerID, ResolveRequest{
		DepositorAward: msg.DepositorAward,
		ReceiverAward:  msg.ReceiverAward,
		ItemAward:      msg.ItemAward,
		Details:        msg.Details,
	})
	if err != nil {
		return nil, err
	}
	return lockerResult(msg.LockerID), nil
}

// loadMsg loads the message and returns the address of the caller.
func loadMsg(ctx weave.Context, auth x.Authenticator, tx weave.Tx, msg weave.Msg) (weave.Address, error) {
	if err := weave.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	return caller.Address(), nil
}

func lockerResult(id uint64) *weave.DeliverResult {
	key := LockerKey(id)
	return &weave.DeliverResult{
		Data: key,
		Tags: []common.KVPair{{Key: []byte(TagKey), Value: key}},
	}
}
