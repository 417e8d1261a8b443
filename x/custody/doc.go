/*
Package custody moves escrowed assets in and out of custody accounts.

An Asset is one of three kinds: native currency, a fungible token or a
single non-fungible item. The Backend pulls an asset from its owner
into a custody account and pushes it back out, dispatching by kind to
the cash or nft extension. A Payout decides how value leaves custody:
Direct pushes it to the beneficiary, Pooled credits fungible value to
the beneficiary's vault account.
*/
package custody
