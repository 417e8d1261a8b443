package x

import (
	"github.com/iov-one/lexlocker/weave"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so tests can plug in mock identities instead of the caller
// decorator.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(weave.Context) []weave.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(weave.Context, weave.Address) bool
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}
