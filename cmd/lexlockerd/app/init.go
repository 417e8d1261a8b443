package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/crypto"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/cash"
	"github.com/iov-one/lexlocker/x/locker"
	"github.com/iov-one/lexlocker/x/nft"
	"github.com/iov-one/lexlocker/x/resolver"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// AddressHRP is the human readable part of bech32 addresses printed by
// the tooling.
const AddressHRP = "lex"

// GenesisState is the app_state section understood by Initializers.
type GenesisState struct {
	Conf struct {
		Locker *locker.Configuration `json:"locker"`
	} `json:"conf"`
	Cash      []cash.GenesisAccount      `json:"cash"`
	NFTs      []nft.GenesisToken         `json:"nfts"`
	Resolvers []resolver.GenesisResolver `json:"resolvers"`
}

// GenInitOptions returns a development app_state funding a single wallet.
// args are an optional native ticker, LEX by default, and an optional
// owner address. Without an address a fresh key is generated and its
// secret printed to stdout.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "LEX"
	if len(args) > 0 {
		ticker = args[0]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
	}

	var owner weave.Address
	if len(args) > 1 {
		a, err := weave.ParseAddress(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		owner = a
	} else {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		fmt.Println(keys)
		owner = a
	}

	state := GenesisState{
		Cash: []cash.GenesisAccount{
			{Address: owner, Coins: coin.Coins{coin.NewCoin(123456789, 0, ticker)}},
		},
		NFTs:      []nft.GenesisToken{},
		Resolvers: []resolver.GenesisResolver{},
	}
	state.Conf.Locker = &locker.Configuration{
		Metadata:         &weave.Metadata{Schema: 1},
		NativeTicker:     ticker,
		MaxDetailsLength: 1024,
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	return raw, errors.Wrap(err, "encode app state")
}

// GenerateApp builds the node application for the start command. The
// state lives in lexlocker.db under home, or in memory when home is empty.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	dbPath := ""
	if home != "" {
		dbPath = filepath.Join(home, "lexlocker.db")
	}
	node, err := Application("lexlocker", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	node.WithInit(Initializers())
	node.WithLogger(logger)
	return node, nil
}

// GenerateCoinKey creates an ed25519 key and returns its address together
// with a JSON document holding the bech32 address and both keys.
func GenerateCoinKey() (weave.Address, string, error) {
	secret := crypto.GenPrivKeyEd25519()
	pub := secret.PublicKey()
	human, err := pub.Address().Bech32(AddressHRP)
	if err != nil {
		return nil, "", errors.Wrap(err, "bech32")
	}
	doc, err := json.MarshalIndent(struct {
		Address string             `json:"address"`
		Pubkey  *crypto.PublicKey  `json:"pub_key"`
		Secret  *crypto.PrivateKey `json:"secret"`
	}{human, pub, secret}, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "encode keys")
	}
	return pub.Address(), string(doc), nil
}
