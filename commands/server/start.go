package server

import (
	"flag"

	"github.com/iov-one/lexlocker/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

type startArgs struct {
	addr  string
	debug bool
}

func parseFlags(args []string) (startArgs, error) {
	var res startArgs
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&res.addr, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&res.debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd initializes the application, and serves it over an ABCI
// socket until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Generate the app in the proper dir
	app, err := gen(home, logger, opts.debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.addr)

	svr, err := server.NewServer(opts.addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	cmn.TrapSignal(logger, func() {
		// Cleanup
		if err := svr.Stop(); err != nil {
			logger.Error("cannot stop server", "err", err)
		}
	})
	// Run forever.
	select {}
}
