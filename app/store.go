package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp serves the state side of ABCI: the genesis, queries, blocks
// and commits. BaseApp adds transactions on top.
//
// Info, InitChain, BeginBlock, EndBlock and Commit take no user input, so
// a failure there means the node cannot continue. They panic.
type StoreApp struct {
	name   string
	logger log.Logger
	state  *state

	initializer weave.Initializer
	queryRouter weave.QueryRouter

	// chainID is empty until InitChain, or loaded from the store on a
	// restart.
	chainID string

	// baseContext lives as long as the app. blockContext is derived from
	// it on every BeginBlock.
	baseContext  weave.Context
	blockContext weave.Context
}

// NewStoreApp panics if the latest version cannot be loaded from store.
func NewStoreApp(name string, store weave.CommitKVStore, queryRouter weave.QueryRouter, baseContext weave.Context) *StoreApp {
	st, err := loadState(store)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		state:       st,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(st.deliver); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.baseContext = weave.WithChainID(s.baseContext, s.chainID)
	}
	info, err := st.version()
	if err != nil {
		panic(err)
	}
	s.blockContext = weave.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets what InitChain loads the genesis app state with.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger also sets the logger of every context the app creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = weave.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context of the block being processed.
func (s *StoreApp) BlockContext() weave.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() weave.CacheableKVStore {
	return s.state.deliver
}

func (s *StoreApp) CheckStore() weave.CacheableKVStore {
	return s.state.check
}

// parseAppState runs the initializer on the genesis app state. It works
// only once per chain.
func (s *StoreApp) parseAppState(data []byte, chainID string, init weave.Initializer) error {
	switch {
	case s.chainID != "":
		return errors.Wrapf(errors.ErrState, "app state already loaded for chain %s", s.chainID)
	case len(data) == 0:
		return errors.Wrap(errors.ErrEmpty, "app_state missing from genesis.json, run init before starting the chain")
	case init == nil:
		return errors.Wrap(errors.ErrHuman, "initializer not set")
	}
	var appState weave.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrapf(errors.ErrInput, "invalid app state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = weave.WithChainID(s.baseContext, chainID)
	return init.FromGenesis(appState, s.DeliverStore())
}

// Info reports the last committed block. Tendermint replays blocks past
// it on start.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.state.version()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          weave.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads the last committed state. The path is "/", "/<bucket>" or
// "/<bucket>/<index>", optionally followed by "?prefix". Keys and values
// are returned as two ResultSets.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, weave.KeyQueryMod
	if i := strings.Index(path, "?"); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queryRouter.Handler(path)
	if h == nil {
		return weave.QueryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", req.Path), false)
	}
	info, err := s.state.version()
	if err != nil {
		return weave.QueryError(err, false)
	}
	models, err := h.Query(s.state.committed.CacheWrap(), mod, req.Data)
	if err != nil {
		return weave.QueryError(err, false)
	}

	keys, values := splitResults(models)
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = keys.Marshal(); err != nil {
		return weave.QueryError(err, false)
	}
	if res.Value, err = values.Marshal(); err != nil {
		return weave.QueryError(err, false)
	}
	return res
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weave.WithHeader(s.baseContext, req.Header)
	s.blockContext = weave.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock reports no validator changes.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
