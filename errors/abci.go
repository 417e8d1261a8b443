package errors

import "fmt"

const (
	// SuccessABCICode is the response code of a successful request.
	SuccessABCICode uint32 = 0

	// Errors without a code are reported as internal errors, with their
	// message hidden.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log to put into an ABCI response. Messages
// of errors without a code and of recovered panics are replaced by a
// generic text unless debug is set. In debug mode the log includes the
// stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	if ErrPanic.Is(err) {
		code = ErrPanic.code
	}
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode, code == ErrPanic.code:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from a response code and log. Unknown codes
// produce an error that still reports the same code.
func ABCIError(code uint32, log string) error {
	root, ok := registry[code]
	if !ok {
		root = &Error{code: code, desc: "unknown error"}
	}
	return Wrap(root, log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the cause chain that
// declares one.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}
