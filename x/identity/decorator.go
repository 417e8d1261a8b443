/*
Package identity binds the pre-authenticated caller of a transaction
to the context, so handlers can find out who is acting without
verifying any credentials themselves.
*/
package identity

import (
	"github.com/iov-one/lexlocker/crypto"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// CallerTx is a transaction that carries the condition of the caller
// already authenticated by the transport. Only public key conditions can
// act as a caller. Conditions owned by extensions, like custody accounts,
// are never accepted.
type CallerTx interface {
	GetCaller() weave.Condition
}

// Decorator reads the caller from the transaction and adds it to the context
type Decorator struct {
	allowMissing bool
}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a decorator that requires every transaction to
// carry a caller
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissing lets transactions without a caller pass along
// with an empty identity
func (d Decorator) AllowMissing() Decorator {
	d.allowMissing = true
	return d
}

// Check puts the caller into the context before calling down the stack.
func (d Decorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, err := d.bind(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver puts the caller into the context before calling down the stack.
func (d Decorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, err := d.bind(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) bind(ctx weave.Context, tx weave.Tx) (weave.Context, error) {
	var caller weave.Condition
	if ctr, ok := tx.(CallerTx); ok {
		caller = ctr.GetCaller()
	}
	if len(caller) == 0 {
		if d.allowMissing {
			return ctx, nil
		}
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	if err := isKeyCondition(caller); err != nil {
		return nil, err
	}
	return withCaller(ctx, caller), nil
}

// keyType is the condition type produced by crypto.PublicKey.
const keyType = "ed25519"

func isKeyCondition(c weave.Condition) error {
	ext, typ, _, err := c.Parse()
	if err != nil {
		return errors.Wrap(err, "caller")
	}
	if ext != crypto.ExtensionName || typ != keyType {
		return errors.Wrapf(errors.ErrUnauthorized, "caller %s/%s is not a key", ext, typ)
	}
	return nil
}
