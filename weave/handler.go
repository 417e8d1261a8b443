package weave

import (
	"encoding/json"

	"github.com/iov-one/lexlocker/errors"
)

// Handler processes the messages of one path, such as "locker/deposit".
type Handler interface {
	Checker
	Deliverer
}

// Checker decides whether a transaction may enter the mempool. It must
// not depend on writes it makes, because CheckTx state is discarded.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer applies a transaction to the block state.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the handlers of every message, for example to
// read signatures or to roll back the writes of a failed transaction.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options is the genesis app state, one JSON document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section key into obj. A missing section leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Stream reads the list in section key one element per call. It returns
// ErrEmpty after the last element.
func (o Options) Stream(key string) func(obj interface{}) error {
	var items []json.RawMessage
	var listErr error
	if raw := o[key]; len(raw) > 0 {
		if json.Unmarshal(raw, &items) != nil {
			listErr = errors.Wrapf(errors.ErrInput, "genesis %q: not a list", key)
		}
	}
	return func(obj interface{}) error {
		if listErr != nil {
			return listErr
		}
		if len(items) == 0 {
			return errors.ErrEmpty
		}
		next := items[0]
		items = items[1:]
		if err := json.Unmarshal(next, obj); err != nil {
			return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
		}
		return nil
	}
}

// Initializer loads the genesis section of an extension into the state.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
