package weavetest

import (
	"github.com/iov-one/lexlocker/crypto"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

// NewCondition returns the signature condition of a fresh ed25519 key,
// giving every test party its own identity.
func NewCondition() weave.Condition {
	return crypto.GenPrivKeyEd25519().PublicKey().Condition()
}

// SequenceID is the key a bucket sequence assigns as its n-th value.
func SequenceID(n uint64) []byte {
	return orm.EncodeSequence(int64(n))
}
