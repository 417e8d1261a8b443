package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/lexlocker/errors"
)

// recorder counts failures instead of stopping the test.
type recorder struct {
	testing.TB
	failures int
}

func (r *recorder) Fatal(args ...interface{}) {
	r.TB.Log(args...)
	r.failures++
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.TB.Logf(format, args...)
	r.failures++
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want, got error
		fails     bool
	}{
		"same root":      {want: errors.ErrNotFound, got: errors.ErrNotFound},
		"wrapped root":   {want: errors.ErrNotFound, got: errors.Wrap(errors.ErrNotFound, "locker 2")},
		"both nil":       {want: nil, got: nil},
		"unexpected":     {want: nil, got: errors.ErrNotFound, fails: true},
		"missing":        {want: errors.ErrNotFound, got: nil, fails: true},
		"other root":     {want: errors.ErrNotFound, got: errors.ErrState, fails: true},
		"foreign errors": {want: fmt.Errorf("a"), got: fmt.Errorf("a"), fails: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := &recorder{TB: t}
			IsErr(r, tc.want, tc.got)
			if failed := r.failures > 0; failed != tc.fails {
				t.Fatalf("want failed=%v, got %d failures", tc.fails, r.failures)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		err   error
		field string
		want  *errors.Error
		fails bool
	}{
		"single match": {
			err:   errors.Field("Amount", errors.ErrAmount, "negative"),
			field: "Amount",
			want:  errors.ErrAmount,
		},
		"wrong kind": {
			err:   errors.Field("Amount", errors.ErrAmount, "negative"),
			field: "Amount",
			want:  errors.ErrCurrency,
			fails: true,
		},
		"no error expected": {
			err:   errors.Field("Amount", errors.ErrAmount, "negative"),
			field: "Receiver",
		},
		"unexpected error": {
			err:   errors.Field("Amount", errors.ErrAmount, "negative"),
			field: "Amount",
			fails: true,
		},
		"two errors for one field": {
			err: errors.Append(
				errors.Field("Amount", errors.ErrAmount, "negative"),
				errors.Field("Amount", errors.ErrAmount, "fractional"),
			),
			field: "Amount",
			want:  errors.ErrAmount,
			fails: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := &recorder{TB: t}
			FieldError(r, tc.err, tc.field, tc.want)
			if failed := r.failures > 0; failed != tc.fails {
				t.Fatalf("want failed=%v, got %d failures", tc.fails, r.failures)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var none map[string]int
	for _, v := range []interface{}{nil, none, (*errors.Error)(nil), []byte(nil)} {
		r := &recorder{TB: t}
		Nil(r, v)
		if r.failures != 0 {
			t.Fatalf("%#v must pass", v)
		}
	}
	r := &recorder{TB: t}
	Nil(r, 0)
	if r.failures != 1 {
		t.Fatal("zero is not nil")
	}
}
