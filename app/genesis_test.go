package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store/iavl"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	c.called++
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		wantParseErr bool
		wantInitErr  bool
		wantChain    string
		wantCalled   int
		wantValue    []byte
	}{
		"no such file": {
			file:         "testdata/missing.json",
			wantParseErr: true,
		},
		"proper parse": {
			file:       "testdata/genesis.json",
			wantChain:  "test-chain-67",
			wantCalled: 1,
			wantValue:  []byte("secret"),
		},
		"bad init": {
			file:        "testdata/bad_genesis.json",
			wantInitErr: true,
			wantChain:   "super-chain-22",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			if tc.wantParseErr {
				assert.IsErr(t, errors.ErrInput, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantChain, gen.ChainID)

			c := new(countInit)
			s := NewStoreApp("foo", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
			s.WithInit(ChainInitializers(dummyInit{}, c))
			assert.Equal(t, "", s.GetChainID())

			raw, err := json.Marshal(gen.AppState)
			assert.Nil(t, err)
			err = s.parseAppState(raw, gen.ChainID, s.initializer)
			if tc.wantInitErr && err == nil {
				t.Fatal("initialization did not fail")
			}
			if !tc.wantInitErr {
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.wantChain, s.GetChainID())
			assert.Equal(t, tc.wantCalled, c.called)
			val, err := s.DeliverStore().Get([]byte(dummyKey))
			assert.Nil(t, err)
			assert.Equal(t, tc.wantValue, val)
		})
	}
}

func TestInitChainTwice(t *testing.T) {
	s := NewStoreApp("foo", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
	s.WithInit(dummyInit{})
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{"dummy": "x"}`)})
	assert.Equal(t, "test-chain-1", s.GetChainID())

	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain-2", AppStateBytes: []byte(`{}`)})
	})
	assert.Panics(t, func() {
		other := NewStoreApp("foo", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
		other.InitChain(abci.RequestInitChain{ChainId: "test-chain-3"})
	})
}
