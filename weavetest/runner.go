package weavetest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is satisfied by *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatalf(string, ...interface{})
}

// WeaveApp is the view of the application given to code running inside
// a block.
type WeaveApp interface {
	DeliverTx(weave.Tx) error
	CheckTx(weave.Tx) error
	weave.ReadOnlyKVStore
}

// WeaveRunner drives an ABCI application block by block, encoding
// transactions and decoding query results. It reads committed state
// through the raw "/" query.
type WeaveRunner struct {
	t       Tester
	app     abci.Application
	chainID string
	height  int64
}

var _ WeaveApp = (*WeaveRunner)(nil)

func NewWeaveRunner(t Tester, app abci.Application, chainID string) *WeaveRunner {
	return &WeaveRunner{t: t, app: app, chainID: chainID}
}

// InitChain loads genesis, encoded as JSON, in its own block. A genesis
// that leaves the state untouched fails the test.
func (w *WeaveRunner) InitChain(genesis interface{}) {
	w.t.Helper()
	raw, err := json.Marshal(genesis)
	if err != nil {
		w.t.Fatalf("cannot encode genesis: %s", err)
	}
	changed := w.InBlock(func(WeaveApp) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: raw,
		})
		return nil
	})
	if !changed {
		w.t.Fatalf("genesis did not change the state")
	}
}

// InBlock runs fn inside a new block and commits it. It reports whether
// the app hash changed. An error from fn fails the test.
func (w *WeaveRunner) InBlock(fn func(WeaveApp) error) bool {
	w.t.Helper()
	w.height++
	before := w.app.Info(abci.RequestInfo{}).LastBlockAppHash

	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: w.chainID, Height: w.height},
	})
	if err := fn(w); err != nil {
		w.t.Fatalf("block %d: %+v", w.height, err)
	}
	w.app.EndBlock(abci.RequestEndBlock{Height: w.height})
	return !bytes.Equal(before, w.app.Commit().Data)
}

func (w *WeaveRunner) DeliverTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	res := w.app.DeliverTx(raw)
	return abciErr(res.Code, res.Log)
}

func (w *WeaveRunner) CheckTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	res := w.app.CheckTx(raw)
	return abciErr(res.Code, res.Log)
}

func abciErr(code uint32, log string) error {
	if code == errors.SuccessABCICode {
		return nil
	}
	return errors.ABCIError(code, log)
}

func (w *WeaveRunner) query(path string, key []byte) ([]weave.Model, error) {
	res := w.app.Query(abci.RequestQuery{Path: path, Data: key})
	if err := abciErr(res.Code, res.Log); err != nil {
		return nil, err
	}
	var keys, values resultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "cannot parse keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]weave.Model, len(keys.Results))
	for i := range models {
		models[i] = weave.Pair(keys.Results[i], values.Results[i])
	}
	return models, nil
}

// Get reads the committed value under key.
func (w *WeaveRunner) Get(key []byte) ([]byte, error) {
	models, err := w.query("/", key)
	if err != nil || len(models) == 0 {
		return nil, err
	}
	return models[0].Value, nil
}

func (w *WeaveRunner) Has(key []byte) (bool, error) {
	value, err := w.Get(key)
	return value != nil, err
}

// Iterator can only walk the whole committed state.
func (w *WeaveRunner) Iterator(start, end []byte) (weave.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "runner iterates the full range only")
	}
	models, err := w.query("/?prefix", nil)
	if err != nil {
		return nil, err
	}
	return store.IterateModels(models), nil
}

func (w *WeaveRunner) ReverseIterator(start, end []byte) (weave.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "runner cannot iterate in reverse")
}

// resultSet is the query encoding of app.ResultSet. The app package
// imports this one, so the type cannot be shared.
type resultSet struct {
	Results [][]byte
}

func (r *resultSet) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, r)
}
