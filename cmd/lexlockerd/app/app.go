/*
Package app assembles the lexlocker node: the decorator chain every
transaction passes through, the message router, the query paths and the
genesis loaders.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/lexlocker/app"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/store/iavl"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/cash"
	"github.com/iov-one/lexlocker/x/custody"
	"github.com/iov-one/lexlocker/x/identity"
	"github.com/iov-one/lexlocker/x/locker"
	"github.com/iov-one/lexlocker/x/nft"
	"github.com/iov-one/lexlocker/x/resolver"
	"github.com/iov-one/lexlocker/x/utils"
	"github.com/iov-one/lexlocker/x/vault"
)

// Stack returns the transaction handler of the node. Every message is
// logged, guarded against panics, bound to its caller, tagged with its
// route and executed atomically before reaching its extension.
func Stack() weave.Handler {
	chain := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		identity.NewDecorator(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
	return chain.WithHandler(router())
}

func router() *app.Router {
	auth := identity.Authenticate{}
	wallets := cash.NewController(cash.NewBucket())
	items := nft.NewController(nft.NewBucket())
	pool := vault.NewController(vault.NewBucket(), wallets)
	registry := resolver.NewRegistry(resolver.NewBucket())
	backend := custody.NewCustodian(wallets, items)
	payouts := map[resolver.Routing]custody.Payout{
		resolver.Direct: custody.NewDirect(backend),
		resolver.Pooled: custody.NewPooled(backend, pool),
	}
	ledger := locker.NewLedger(locker.NewBucket(), registry, backend, payouts)

	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, wallets)
	nft.RegisterRoutes(r, auth, items)
	vault.RegisterRoutes(r, auth, pool)
	resolver.RegisterRoutes(r, auth, registry)
	locker.RegisterRoutes(r, auth, ledger)
	return r
}

// QueryRouter serves /wallets, /nfts, /vaults, /resolvers, /lockers, their
// indexes and raw store access under /.
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		nft.RegisterQuery,
		vault.RegisterQuery,
		resolver.RegisterQuery,
		locker.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		&locker.Initializer{},
		&cash.Initializer{},
		&nft.Initializer{},
		&resolver.Initializer{},
	)
}

// Application builds an ABCI application running h on a store kept at
// dbPath. An empty path keeps the state in memory.
func Application(name string, h weave.Handler, tx weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := openStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	storeApp := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(storeApp, tx, h, debug), nil
}

// openStore opens the iavl store named by dbPath. Any extension of the
// file name, usually .db, is dropped since leveldb appends its own.
func openStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
