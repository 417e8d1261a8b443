package nft

import (
	"regexp"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

const (
	// BucketName is where the items are stored
	BucketName = "nfts"
	// OwnerIndexName is the index to query items by owner
	OwnerIndexName = "owner"

	maxIDLength = 256
)

var isCollection = regexp.MustCompile(`^[a-z0-9_\-]{3,32}$`).MatchString

// ValidateCollection returns an error if the name cannot be used as
// a collection name.
func ValidateCollection(name string) error {
	if !isCollection(name) {
		return errors.Wrapf(errors.ErrInput, "collection %q", name)
	}
	return nil
}

// ValidateItemID returns an error if the id cannot identify an item.
func ValidateItemID(id []byte) error {
	switch n := len(id); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "item id")
	case n > maxIDLength:
		return errors.Wrap(errors.ErrInput, "item id too long")
	}
	return nil
}

// TokenKey returns the primary key of the item with given id in the
// collection.
func TokenKey(collection string, id []byte) []byte {
	key := make([]byte, 0, len(collection)+1+len(id))
	key = append(key, collection...)
	key = append(key, '/')
	return append(key, id...)
}

// Token is a single non-fungible item and its current owner.
type Token struct {
	Metadata   *weave.Metadata `json:"metadata"`
	Collection string          `json:"collection"`
	ID         []byte          `json:"id"`
	Owner      weave.Address   `json:"owner"`
}

var _ orm.Model = (*Token)(nil)

// Validate ensures the token is well formed
func (t *Token) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", t.Metadata.Validate())
	err = errors.AppendField(err, "Collection", ValidateCollection(t.Collection))
	err = errors.AppendField(err, "ID", ValidateItemID(t.ID))
	err = errors.AppendField(err, "Owner", t.Owner.Validate())
	return err
}

// Copy returns a deep copy of the token
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Metadata:   t.Metadata.Copy(),
		Collection: t.Collection,
		ID:         append([]byte(nil), t.ID...),
		Owner:      append(weave.Address(nil), t.Owner...),
	}
}

func (t *Token) Marshal() ([]byte, error) {
	return weave.Marshal(t)
}

func (t *Token) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, t)
}

// NewBucket returns a bucket for managing tokens, indexed by owner
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Token{},
		orm.WithIndex(OwnerIndexName, ownerIndex),
	)
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(orm.ErrInvalidIndex, "nil")
	}
	t, ok := obj.Value().(*Token)
	if !ok {
		return nil, errors.Wrapf(orm.ErrInvalidIndex, "unsupported type %T", obj.Value())
	}
	return t.Owner, nil
}
