package orm

import (
	"reflect"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// SimpleObj pairs a key with a model.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Value() weave.Persistent {
	return o.value
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Validate requires a key and a value and validates the value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return errors.Field("Value", o.value.Validate(), "invalid value")
}

// Clone returns an object with the same key and a zero value of the same
// model type.
func (o *SimpleObj) Clone() Object {
	model := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: model}
}
