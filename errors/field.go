package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err, for example "Amount" or
// "Parties.Receiver". Nested fields use dots. It returns nil for a nil
// err, so validation code can return its result directly.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, parent: err}
}

// AppendField adds a field error for name to errs. Nil errors are
// dropped.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name   string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.name, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

// FieldErrors collects the errors attached to the named field anywhere in
// the error tree. The search stops at the first match on each branch.
func FieldErrors(err error, name string) []error {
	var found []error
	for !isNilErr(err) {
		switch x := err.(type) {
		case *fieldError:
			if x.name == name {
				return append(found, x)
			}
			err = x.parent
		case unpacker:
			for _, member := range x.Unpack() {
				found = append(found, FieldErrors(member, name)...)
			}
			return found
		case causer:
			err = x.Cause()
		default:
			return found
		}
	}
	return found
}
