/*
Package server provides the commands of an application binary: starting
the ABCI server, writing the application state into a tendermint genesis
file, validating a genesis file and dumping a stored block.

All commands parse their own flags with the flag package and return an
error instead of exiting.
*/
package server
