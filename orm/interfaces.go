package orm

import (
	"github.com/iov-one/lexlocker/weave"
)

// Object is a key and the value stored under it, within a bucket.
type Object interface {
	Keyed
	Cloneable
	// Validate is called before the object is saved.
	Validate() error
	Value() weave.Persistent
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty object of the same type to load data into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a value that objects can carry.
type CloneableData interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}

// Model is an entity stored by a ModelBucket. It is the same contract as
// CloneableData under the name extensions use.
type Model interface {
	weave.Persistent
	Validate() error
	Copy() CloneableData
}
