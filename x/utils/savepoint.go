package utils

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

type phase uint8

const (
	checkPhase phase = 1 << iota
	deliverPhase
)

// Savepoint runs the wrapped handler on a cached view of the store and
// writes the changes back only when the handler succeeds, so a failed
// transaction leaves no partial locker or wallet updates behind. It is
// inactive until enabled with OnCheck or OnDeliver.
type Savepoint struct {
	on phase
}

// NewSavepoint returns a Savepoint with no phase enabled.
func NewSavepoint() Savepoint { return Savepoint{} }

// OnCheck enables rollback for CheckTx.
func (s Savepoint) OnCheck() Savepoint { s.on |= checkPhase; return s }

// OnDeliver enables rollback for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint { s.on |= deliverPhase; return s }

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	var res *weave.CheckResult
	err := s.run(checkPhase, db, func(db weave.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	var res *weave.DeliverResult
	err := s.run(deliverPhase, db, func(db weave.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// run calls fn directly when p is disabled or db cannot be cached.
func (s Savepoint) run(p phase, db weave.KVStore, fn func(weave.KVStore) error) error {
	cacheable, ok := db.(weave.CacheableKVStore)
	if s.on&p == 0 || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
