package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by every extension. Extensions register their own
// codes from 100 up.
var (
	// ErrUnauthorized means the caller may not run the operation.
	ErrUnauthorized = Register(2, "unauthorized")
	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = Register(3, "not found")
	// ErrMsg flags a message that cannot be handled at all.
	ErrMsg = Register(4, "invalid message")
	// ErrDuplicate means a record with the same key already exists.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks a code path that correct wiring never reaches.
	ErrHuman = Register(7, "coding error")
	// ErrImmutable is returned on an attempt to change a fixed value.
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	// ErrInsufficientAmount means a balance cannot cover an amount.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	// ErrOverflow means an arithmetic result does not fit its type.
	ErrOverflow = Register(15, "value overflow")
	// ErrCurrency means a ticker is malformed or not accepted here.
	ErrCurrency = Register(16, "invalid currency code")
	ErrMetadata = Register(17, "invalid metadata")
	// ErrDatabase wraps failures of the underlying store.
	ErrDatabase = Register(18, "database")
	// ErrIteratorDone is returned by an exhausted iterator.
	ErrIteratorDone = Register(19, "iterator done")
	// ErrPanic carries a recovered panic. Its message never leaves the node
	// outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every code to its root error. Code 1 is reserved for
// errors that carry no code.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error. Codes are unique per process and
// reusing one panics, so only call it while initializing package
// variables.
func Register(code uint32, description string) *Error {
	if prev, taken := registry[code]; taken {
		panic(fmt.Sprintf("error code %d is taken by %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Runtime errors wrap one so their code survives
// any number of wraps.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode is the code reported in ABCI responses.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New wraps the root error with a description.
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is e or wraps it. A multi error matches when any
// member does. A nil root only matches nil errors.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		switch x := err.(type) {
		case unpacker:
			for _, member := range x.Unpack() {
				if e.Is(member) {
					return true
				}
			}
			return false
		case causer:
			err = x.Cause()
		default:
			return false
		}
	}
	return false
}

// Wrap adds a description to err. It returns nil for a nil err. A stack
// trace is recorded once, on the innermost wrap.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic stored in err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// isNilErr also catches typed nil pointers stored in an error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
