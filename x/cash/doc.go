/*
Package cash keeps balances of native currency and fungible tokens.

Each address owns a wallet, a set of coins with distinct tickers.
Other extensions move value around through the Controller, while
the SendMsg lets a caller transfer coins from its own wallet.
*/
package cash
