package custody

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/nft"
)

// Kind selects the transfer semantics of an asset.
type Kind int32

const (
	// Native is the currency of the chain, attached to the call.
	Native Kind = 1
	// Fungible is a token identified by its ticker.
	Fungible Kind = 2
	// NonFungible is one specific item of a collection.
	NonFungible Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Native:
		return "native"
	case Fungible:
		return "fungible"
	case NonFungible:
		return "non-fungible"
	}
	return "unknown"
}

// Asset describes value held in custody.
//
// Native and Fungible assets carry a positive Amount. For Fungible
// assets Ref is the ticker of the amount. NonFungible assets carry no
// Amount, Ref names the collection and ItemID the single item.
type Asset struct {
	Kind   Kind       `json:"kind"`
	Ref    string     `json:"ref"`
	Amount *coin.Coin `json:"amount"`
	ItemID []byte     `json:"item_id"`
}

// IsNonFungible returns true if the asset is a single item.
func (a Asset) IsNonFungible() bool {
	return a.Kind == NonFungible
}

// Validate returns an error if the asset is not well formed.
func (a Asset) Validate() error {
	switch a.Kind {
	case Native:
		if a.Ref != "" {
			return errors.Field("Ref", errors.ErrInput, "must be empty for native currency")
		}
		if len(a.ItemID) != 0 {
			return errors.Field("ItemID", errors.ErrInput, "must be empty for native currency")
		}
		return validateAmount(a.Amount)
	case Fungible:
		if !coin.IsCC(a.Ref) {
			return errors.Field("Ref", errors.ErrCurrency, "invalid ticker %q", a.Ref)
		}
		if len(a.ItemID) != 0 {
			return errors.Field("ItemID", errors.ErrInput, "must be empty for fungible token")
		}
		if err := validateAmount(a.Amount); err != nil {
			return err
		}
		if a.Amount.Ticker != a.Ref {
			return errors.Field("Amount", errors.ErrCurrency, "want %s, got %s", a.Ref, a.Amount.Ticker)
		}
		return nil
	case NonFungible:
		if err := nft.ValidateCollection(a.Ref); err != nil {
			return errors.Field("Ref", err, "")
		}
		if a.Amount != nil {
			return errors.Field("Amount", errors.ErrInput, "an item has no amount")
		}
		return errors.Field("ItemID", nft.ValidateItemID(a.ItemID), "")
	default:
		return errors.Field("Kind", errors.ErrInput, "unknown asset kind %d", a.Kind)
	}
}

func validateAmount(c *coin.Coin) error {
	if coin.IsEmpty(c) || !c.IsPositive() {
		return errors.Field("Amount", errors.ErrAmount, "must be positive")
	}
	return errors.Field("Amount", c.Validate(), "")
}

// WithAmount returns a fungible or native asset of the same kind holding
// the given amount.
func (a Asset) WithAmount(c coin.Coin) Asset {
	a.Amount = &c
	return a
}

// Copy returns a deep copy of the asset.
func (a Asset) Copy() Asset {
	a.Amount = a.Amount.Clone()
	a.ItemID = append([]byte(nil), a.ItemID...)
	return a
}

// Address returns the custody account address for the given key. Every
// escrow record owns exactly one custody account.
func Address(ext string, key []byte) weave.Address {
	return weave.NewCondition(ext, "seq", key).Address()
}
