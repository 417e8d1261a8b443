/*
Package x contains the standard extensions of the ledger.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct the application.
This package holds the authentication helpers shared by all of them.

Follow standard go naming conventions and avoid stutter. Use eg.
`locker.DepositMsg` in place of `locker.LockerDepositMsg`.
*/
package x
