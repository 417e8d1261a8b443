package nft

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

// Controller moves single items between owners.
type Controller interface {
	Owner(db weave.ReadOnlyKVStore, collection string, id []byte) (weave.Address, error)
	Transfer(db weave.KVStore, collection string, id []byte, from, to weave.Address) error
	Mint(db weave.KVStore, collection string, id []byte, owner weave.Address) error
}

// BaseController keeps item ownership in the token bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given token bucket
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Owner returns the current owner of the item, or ErrNotFound.
func (c BaseController) Owner(db weave.ReadOnlyKVStore, collection string, id []byte) (weave.Address, error) {
	var t Token
	if err := c.bucket.One(db, TokenKey(collection, id), &t); err != nil {
		return nil, errors.Wrapf(err, "item %s/%X", collection, id)
	}
	return t.Owner, nil
}

// Transfer gives the item to a new owner. It fails with ErrUnauthorized
// unless from is the current owner.
func (c BaseController) Transfer(db weave.KVStore, collection string, id []byte, from, to weave.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	key := TokenKey(collection, id)
	var t Token
	if err := c.bucket.One(db, key, &t); err != nil {
		return errors.Wrapf(err, "item %s/%X", collection, id)
	}
	if !t.Owner.Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own %s/%X", from, collection, id)
	}
	t.Owner = to
	if _, err := c.bucket.Put(db, key, &t); err != nil {
		return errors.Wrap(err, "save token")
	}
	return nil
}

// Mint creates a new item. An id can be used only once per collection.
func (c BaseController) Mint(db weave.KVStore, collection string, id []byte, owner weave.Address) error {
	key := TokenKey(collection, id)
	switch err := c.bucket.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "item %s/%X", collection, id)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	t := Token{
		Metadata:   &weave.Metadata{Schema: 1},
		Collection: collection,
		ID:         id,
		Owner:      owner,
	}
	if _, err := c.bucket.Put(db, key, &t); err != nil {
		return errors.Wrap(err, "save token")
	}
	return nil
}
