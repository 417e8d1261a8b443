package weave

import (
	"github.com/iov-one/lexlocker/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc is the binary codec shared by all models, messages and transactions.
var cdc = amino.NewCodec()

// Marshal serializes given value using the binary amino encoding. Models and
// messages implement their Marshal method using this function.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", o, err)
	}
	return bz, nil
}

// Unmarshal deserializes binary amino encoded data into given pointer.
func Unmarshal(bz []byte, ptr interface{}) error {
	if len(bz) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", ptr, err)
	}
	return nil
}
