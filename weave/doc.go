/*
Package weave defines the interfaces used throughout the lexlocker
application: storage, transactions, handlers and decorators. It also contains
helpers to work with context, addresses, conditions and abci responses.

Look into this package to get a brief overview of the design decisions made
around interfaces and extension building blocks. Every extension found under
x/ is built only against the types declared here.
*/
package weave
