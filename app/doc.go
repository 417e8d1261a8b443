/*
Package app wires a weave Handler, Initializer and QueryRouter into an
abci.Application.

StoreApp takes care of the persistent state, the genesis file and the
queries. BaseApp extends it with transaction processing. Decorators are
combined with ChainDecorators and the messages are dispatched by the
Router.
*/
package app
