package weave

import (
	"github.com/iov-one/lexlocker/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is what a handler returns for an accepted transaction.
// Failures are reported as errors only.
type DeliverResult struct {
	// Data is read by clients, for example the key of a created locker.
	Data []byte
	Log  string
	// Tags let tendermint index and search the transaction.
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

// CheckResult is what a handler returns for a transaction that may enter
// the mempool.
type CheckResult struct {
	Data []byte
	Log  string
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log}
}

// DeliverResponse builds the DeliverTx response from a handler outcome.
// In debug mode a failure log carries the full error with its stack.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := failure("deliver", err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	return res.ToABCI()
}

// CheckResponse builds the CheckTx response from a handler outcome.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := failure("check", err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	return res.ToABCI()
}

// QueryError builds a failed query response.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

func failure(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	return code, "cannot " + phase + " tx: " + log
}
