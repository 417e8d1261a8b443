package utils

import (
	"github.com/iov-one/lexlocker/weave"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key under which delivered transactions publish their
// message route, so clients can subscribe to locker/resolve and friends.
const ActionKey = "action"

// NewActionTagger returns a decorator tagging every successful delivery
// with ActionKey set to the message path. Checks pass through untouched.
func NewActionTagger() weave.Decorator {
	return actionTagger{}
}

type actionTagger struct{}

func (actionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (actionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	// Read the route first so a broken tx never reaches the handler.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
