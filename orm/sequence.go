package orm

import (
	"encoding/binary"

	"github.com/iov-one/lexlocker/weave"
)

// Sequence is a persisted counter. Its values are 8 bytes big endian so
// that later values also sort after earlier ones.
type Sequence struct {
	id []byte
}

// NewSequence returns the counter stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns the new value encoded.
func (s *Sequence) NextVal(db weave.KVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, err
	}
	next := EncodeSequence(DecodeSequence(raw) + 1)
	if err := db.Set(s.id, next); err != nil {
		return nil, err
	}
	return next, nil
}

// DecodeSequence reads a sequence value. Anything but 8 bytes, nil
// included, decodes to zero.
func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// EncodeSequence returns the 8 byte form of val.
func EncodeSequence(val int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(val))
	return raw
}
