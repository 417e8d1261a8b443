package app

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a StoreApp that also decodes transactions and runs them
// through a handler.
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	// debug puts full errors with stack traces in failed responses
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler, debug: debug}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return weave.DeliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return weave.DeliverResponse(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return weave.CheckResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return weave.CheckResponse(res, err, b.debug)
}

// decode turns a decoder panic into an error.
func (b BaseApp) decode(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}

func (b BaseApp) txContext(call string, tx weave.Tx) weave.Context {
	return weave.WithLogInfo(b.BlockContext(), "call", call, "path", weave.GetPath(tx))
}
