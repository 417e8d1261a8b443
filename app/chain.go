package app

import (
	"reflect"

	"github.com/iov-one/lexlocker/weave"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
type Decorators struct {
	chain []weave.Decorator
}

// ChainDecorators stacks decorators in call order. The first one sees a
// transaction first:
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		identity.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
//
// Nil decorators, typed or not, are skipped, so optional ones can be
// passed unconditionally.
func ChainDecorators(chain ...weave.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a stack with chain added below the current decorators.
func (d Decorators) Chain(chain ...weave.Decorator) Decorators {
	next := make([]weave.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d weave.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{dec: d.chain[i], next: h}
	}
	return h
}

// link runs one decorator with the rest of the stack as its next handler.
type link struct {
	dec  weave.Decorator
	next weave.Handler
}

func (l link) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
