// Package assert provides the small set of fatal assertions used by the
// lexlocker tests.
package assert

import (
	"reflect"

	"github.com/iov-one/lexlocker/errors"
)

// T is the part of testing.TB the assertions use.
type T interface {
	Helper()
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Nil fails unless value is nil or a typed nil. Errors are printed with
// %+v so their stack trace shows.
func Nil(t T, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

// isNil accepts nil interfaces and nil chans, funcs, maps, pointers and
// slices.
func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails unless want and got are deeply equal.
func Equal(t T, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails if fn returns normally.
func Panics(t T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("want a panic")
		}
	}()
	fn()
}

// IsErr fails unless got is want or wraps it. Two nil errors match.
func IsErr(t T, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails unless err holds exactly one error for field and that
// error is of the wanted kind. A nil want asserts that field has no error.
func FieldError(t T, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	switch {
	case want == nil && len(found) == 0:
	case want == nil:
		t.Fatalf("want no %s error, got %v", field, found)
	case len(found) != 1:
		t.Fatalf("want one %s error, got %d: %v", field, len(found), found)
	case !want.Is(found[0]):
		t.Fatalf("want %s error %q, got %q", field, want, found[0])
	}
}
