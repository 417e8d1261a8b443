// Package utils provides the decorators every transaction of the ledger
// passes through: logging, panic recovery, action tagging and savepoints.
package utils
