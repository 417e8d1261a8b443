package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/lexlocker/cmd/lexlockerd/app"
	"github.com/iov-one/lexlocker/commands"
	"github.com/iov-one/lexlocker/commands/server"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/tendermint/tendermint/libs/log"
)

const usage = `lexlockerd - escrow and arbitration ledger node

Usage: lexlockerd [-home DIR] COMMAND [ARGS]

Commands:
  help      Print this message
  init      Write the app state into a tendermint genesis file
  start     Run the ABCI server
  validate  Check the app state of genesis files
  getblock  Print a block of blockstore.db as JSON
  testgen   Write example encodings to a directory
  version   Print the app version

Flags:
`

func main() {
	home := flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".lexlocker"), "directory to store files under")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "lexlocker")
	if err := run(logger, *home, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}
}

func run(logger log.Logger, home, cmd string, args []string) error {
	switch cmd {
	case "help":
		flag.Usage()
		return nil
	case "init":
		return server.InitCmd(app.GenInitOptions, logger, home, args)
	case "start":
		return server.StartCmd(app.GenerateApp, logger, home, args)
	case "validate":
		return server.ValidateGenesis(app.Initializers(), args)
	case "getblock":
		return server.GetBlockCmd(logger, home, args)
	case "testgen":
		return commands.TestGenCmd(app.Examples(), args)
	case "version":
		fmt.Println(weave.Version())
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}
}
