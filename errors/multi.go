package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. A single error is returned
// as it is, without wrapping it in a multi error.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if me, ok := err.(multiErr); ok {
			res = append(res, me...)
		} else {
			res = append(res, err)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr is a list of errors returned together. The first error defines
// the ABCI code of the whole group.
type multiErr []error

var _ unpacker = multiErr(nil)

// unpacker is implemented by errors that hold a collection of errors.
type unpacker interface {
	Unpack() []error
}

// Unpack returns all errors held by this instance.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first error in the group.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}
