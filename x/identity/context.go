package identity

import (
	"context"

	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x"
)

type contextKey int // local to the identity module

const (
	contextKeyCaller contextKey = iota
)

// withCaller is private, as only this module can bind a caller
func withCaller(ctx weave.Context, caller weave.Condition) weave.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// Authenticate exposes the caller bound by the Decorator
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the caller of the current Context.
// May be empty
func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyCaller).(weave.Condition)
	if val == nil {
		return nil
	}
	return []weave.Condition{val}
}

// HasAddress returns true if the caller has this address
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
