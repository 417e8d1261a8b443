package vault

import (
	"context"
	"testing"

	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/store"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/weavetest"
	"github.com/iov-one/lexlocker/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditAndWithdraw(t *testing.T) {
	db := store.MemStore()
	wallets := cash.NewController(cash.NewBucket())
	ctrl := NewController(NewBucket(), wallets)

	custody := weavetest.NewCondition().Address()
	alice := weavetest.NewCondition().Address()
	require.NoError(t, wallets.CoinMint(db, custody, coin.NewCoin(100, 0, "ETH")))

	empty, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, ctrl.Credit(db, custody, alice, coin.NewCoin(60, 0, "ETH")))
	err = ctrl.Credit(db, custody, alice, coin.NewCoin(60, 0, "ETH"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "got %+v", err)

	credited, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(60, 0, "ETH")}, credited)

	reserve, err := wallets.Balance(db, ReserveAddress)
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(60, 0, "ETH")}, reserve)

	err = ctrl.Withdraw(db, alice, coin.NewCoin(61, 0, "ETH"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "got %+v", err)

	require.NoError(t, ctrl.Withdraw(db, alice, coin.NewCoin(25, 0, "ETH")))
	got, err := wallets.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(25, 0, "ETH")}, got)

	credited, err = ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(35, 0, "ETH")}, credited)
}

func TestWithdrawHandler(t *testing.T) {
	db := store.MemStore()
	wallets := cash.NewController(cash.NewBucket())
	ctrl := NewController(NewBucket(), wallets)

	alice := weavetest.NewCondition()
	require.NoError(t, wallets.CoinMint(db, alice.Address(), coin.NewCoin(10, 0, "DAI")))
	require.NoError(t, ctrl.Credit(db, alice.Address(), alice.Address(), coin.NewCoin(10, 0, "DAI")))

	msg := &WithdrawMsg{Metadata: &weave.Metadata{Schema: 1}, Amount: coin.NewCoinp(4, 0, "DAI")}
	tx := &weavetest.Tx{Msg: msg}

	unsigned := NewWithdrawHandler(&weavetest.Auth{}, ctrl)
	_, err := unsigned.Deliver(context.Background(), db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	h := NewWithdrawHandler(&weavetest.Auth{Signer: alice}, ctrl)
	_, err = h.Check(context.Background(), db, tx)
	require.NoError(t, err)
	_, err = h.Deliver(context.Background(), db, tx)
	require.NoError(t, err)

	got, err := wallets.Balance(db, alice.Address())
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(4, 0, "DAI")}, got)
}
