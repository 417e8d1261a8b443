package app

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/commands"
	"github.com/iov-one/lexlocker/crypto"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/cash"
	"github.com/iov-one/lexlocker/x/custody"
	"github.com/iov-one/lexlocker/x/locker"
	"github.com/iov-one/lexlocker/x/resolver"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	depositor := crypto.GenPrivKeyEd25519().PublicKey()
	receiver := crypto.GenPrivKeyEd25519().PublicKey().Address()
	arbiter := crypto.GenPrivKeyEd25519().PublicKey().Address()
	meta := &weave.Metadata{Schema: 1}

	wallet, err := cash.NewWallet(coin.NewCoin(50000, 0, "LEX"), coin.NewCoin(150, 567000, "DAI"))
	if err != nil {
		panic(err)
	}

	rsv := &resolver.Resolver{
		Metadata: meta,
		Address:  arbiter,
		Routing:  resolver.Pooled,
		FeeRate:  100,
	}

	send := &cash.SendMsg{
		Metadata:    meta,
		Source:      depositor.Address(),
		Destination: receiver,
		Amount:      coin.NewCoinp(250, 0, "DAI"),
		Memo:        "Test payment",
	}

	deposit := &locker.DepositMsg{
		Metadata: meta,
		Receiver: receiver,
		Resolver: arbiter,
		Asset: custody.Asset{
			Kind:   custody.Fungible,
			Ref:    "DAI",
			Amount: coin.NewCoinp(1000, 0, "DAI"),
		},
		Details: "Delivery of 20 chairs",
	}

	resolve := &locker.ResolveMsg{
		Metadata:       meta,
		LockerID:       1,
		DepositorAward: coin.NewCoinp(500, 0, "DAI"),
		ReceiverAward:  coin.NewCoinp(490, 0, "DAI"),
		Details:        "Half of the chairs were broken",
	}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "resolver", Obj: rsv},
		{Filename: "send_msg", Obj: send},
		{Filename: "deposit_msg", Obj: deposit},
		{Filename: "resolve_msg", Obj: resolve},
		{Filename: "deposit_tx", Obj: NewTx(depositor.Condition(), deposit)},
	}
}
