package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weavetest/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "lexlocker-home")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))
	raw, err := ioutil.ReadFile(filepath.Join("testdata", "genesis.json"))
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(GenesisFile(home), raw, 0600))
	return home, func() { os.RemoveAll(home) }
}

func readAppState(t *testing.T, home string) json.RawMessage {
	t.Helper()
	raw, err := ioutil.ReadFile(GenesisFile(home))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc[appStateKey]
}

func TestInitCmd(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	var gotArgs []string
	gen := func(args []string) (json.RawMessage, error) {
		gotArgs = args
		return json.RawMessage(`{"conf":{"locker":{"native_ticker":"LEX"}}}`), nil
	}

	err := InitCmd(gen, logger, home, []string{"LEX", "addr"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"LEX", "addr"}, gotArgs)
	require.JSONEq(t, `{"conf":{"locker":{"native_ticker":"LEX"}}}`, string(readAppState(t, home)))

	// Other fields of the genesis file are preserved.
	raw, err := ioutil.ReadFile(GenesisFile(home))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, `"test-chain-lexlocker"`, string(doc["chain_id"]))

	gen2 := func([]string) (json.RawMessage, error) {
		return json.RawMessage(`{"conf":{"locker":{"native_ticker":"DAI"}}}`), nil
	}
	err = InitCmd(gen2, logger, home, nil)
	assert.IsErr(t, errors.ErrDuplicate, err)
	require.JSONEq(t, `{"conf":{"locker":{"native_ticker":"LEX"}}}`, string(readAppState(t, home)))

	err = InitCmd(gen2, logger, home, []string{"-f"})
	assert.Nil(t, err)
	require.JSONEq(t, `{"conf":{"locker":{"native_ticker":"DAI"}}}`, string(readAppState(t, home)))
}

func TestInitCmdMissingGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "lexlocker-empty")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) {
		t.Fatal("generator must not be called")
		return nil, nil
	}
	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitCmdGeneratorFailure(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	gen := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInput, "bad ticker")
	}
	err := InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.IsErr(t, errors.ErrInput, err)
	if state := readAppState(t, home); state != nil {
		t.Fatalf("unexpected app state: %s", state)
	}
}

func TestParseFlags(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    startArgs
		wantErr *errors.Error
	}{
		"defaults": {
			want: startArgs{addr: "tcp://localhost:26658"},
		},
		"custom bind and debug": {
			args: []string{"-bind", "unix:///tmp/abci.sock", "-debug"},
			want: startArgs{addr: "unix:///tmp/abci.sock", debug: true},
		},
		"unknown flag": {
			args:    []string{"-min_fee", "0.1 LEX"},
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := parseFlags(tc.args)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
