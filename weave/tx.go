package weave

import (
	"reflect"

	"github.com/iov-one/lexlocker/errors"
)

// Persistent values have a binary form.
type Persistent interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// Msg requests a single state change. It carries no authentication,
// which lives in the enclosing Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example
	// "locker/deposit". It matches [0-9A-Za-z_\-/]+.
	Path() string

	// Validate checks the message on its own, without reading state.
	Validate() error
}

// Tx is a message together with whatever the decorators need, such as
// signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath is the message path of tx, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder reads a transaction from its wire form.
type TxDecoder func(raw []byte) (Tx, error)

// LoadMsg validates the message of tx and copies it into dest, a pointer
// to a message of the same type.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	to := reflect.ValueOf(dest)
	if to.Kind() != reflect.Ptr || to.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination %T is not a usable pointer", dest)
	}
	from := reflect.Indirect(reflect.ValueOf(msg))
	if !from.Type().AssignableTo(to.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dest, msg)
	}
	to.Elem().Set(from)
	return nil
}

var msgType = reflect.TypeOf((*Msg)(nil)).Elem()

// ExtractMsgFromSum returns the one message set in sum, a pointer to a
// struct of message fields. Fields that are not messages are skipped.
func ExtractMsgFromSum(sum interface{}) (Msg, error) {
	ptr := reflect.ValueOf(sum)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container: %T", sum)
	}
	var found Msg
	for _, field := range fields(ptr.Elem()) {
		if !field.Type().Implements(msgType) || (field.Kind() == reflect.Ptr && field.IsNil()) {
			continue
		}
		if found != nil {
			return nil, errors.Wrap(errors.ErrInput, "more than one message set")
		}
		found = field.Interface().(Msg)
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrState, "message container is empty")
	}
	return found, nil
}

func fields(v reflect.Value) []reflect.Value {
	res := make([]reflect.Value, v.NumField())
	for i := range res {
		res[i] = v.Field(i)
	}
	return res
}
