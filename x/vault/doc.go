/*
Package vault implements a pooled vault for fungible value.

Coins credited to an owner are moved into a single reserve wallet
and recorded on the owner's vault account. The owner can later
withdraw credited coins back into their own wallet.
*/
package vault
