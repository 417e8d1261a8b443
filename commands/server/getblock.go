package server

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iov-one/lexlocker/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

var blockCodec = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(blockCodec)
}

// GetBlockCmd prints a block of a tendermint blockstore.db as JSON.
//
//	getblock <path/blockstore.db> [-height=H]
//
// Without -height the latest block is printed.
func GetBlockCmd(logger log.Logger, home string, args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: getblock <path to blockstore.db> [-height=H]")
	}
	fs := flag.NewFlagSet("getblock", flag.ContinueOnError)
	height := fs.Int64("height", 0, "height of the block to print (default latest)")
	if err := fs.Parse(args[1:]); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	db, err := openLevelDB(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	blocks := blockchain.NewBlockStore(db)
	if *height == 0 {
		*height = blocks.Height()
	}
	block := blocks.LoadBlock(*height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block at height %d", *height)
	}
	js, err := blockCodec.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fmt.Println(string(js))
	return nil
}

// openLevelDB opens a goleveldb directory named "<name>.db".
func openLevelDB(path string) (dbm.DB, error) {
	path = strings.TrimSuffix(path, "/")
	if filepath.Ext(path) != ".db" {
		return nil, errors.Wrap(errors.ErrInput, "database directory must end with .db")
	}
	name := strings.TrimSuffix(filepath.Base(path), ".db")
	db, err := dbm.NewGoLevelDB(name, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot open %s: %s", path, err)
	}
	return db, nil
}
