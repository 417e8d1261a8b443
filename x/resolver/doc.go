/*
Package resolver keeps the configuration of arbitration identities.

A resolver registers itself with a payout routing mode and a fee rate
in basis points. Registration overwrites any earlier configuration and
is never deleted.
*/
package resolver
