/*
Package nft tracks ownership of non-fungible items.

Every item belongs to a collection and is identified within it by an
opaque id. The Controller lets other extensions move single items
between owners, and TransferMsg lets an owner give an item away.
*/
package nft
