package coin

import (
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(1, 0, "LEX"),
		NewCoin(2, 0, "DAI"),
		NewCoin(3, 0, "LEX"),
		NewCoin(0, 0, "EUR"),
	)
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(2, 0, "DAI"), NewCoin(4, 0, "LEX")}, cs)
	assert.NoError(t, cs.Validate())

	_, err = CombineCoins(NewCoin(1, 0, "dai"))
	assert.True(t, errors.ErrCurrency.Is(err))
}

func TestCoinsAddKeepsReceiver(t *testing.T) {
	wallet := Coins{NewCoin(5, 0, "DAI")}

	more, err := wallet.Add(NewCoin(1, 0, "DAI"))
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(6, 0, "DAI")}, more)

	before, err := wallet.Add(NewCoin(1, 0, "AAA"))
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(1, 0, "AAA"), NewCoin(5, 0, "DAI")}, before)

	emptied, err := wallet.Subtract(NewCoin(5, 0, "DAI"))
	require.NoError(t, err)
	assert.True(t, emptied.IsEmpty())
	assert.Equal(t, Coins{NewCoin(5, 0, "DAI")}, wallet)

	_, err = Coins{NewCoin(MaxInt, 0, "DAI")}.Add(NewCoin(1, 0, "DAI"))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestCoinsHoldings(t *testing.T) {
	custody := Coins{NewCoin(5, 0, "DAI"), NewCoin(0, 10, "LEX")}

	assert.True(t, custody.Contains(NewCoin(5, 0, "DAI")))
	assert.True(t, custody.Contains(NewCoin(0, 9, "LEX")))
	assert.False(t, custody.Contains(NewCoin(5, 1, "DAI")))
	assert.False(t, custody.Contains(NewCoin(1, 0, "EUR")))
	assert.True(t, custody.Contains(NewCoin(0, 0, "EUR")))

	assert.Equal(t, NewCoin(0, 10, "LEX"), custody.Amount("LEX"))
	assert.Equal(t, Coin{Ticker: "EUR"}, custody.Amount("EUR"))

	assert.True(t, custody.IsPositive())
	assert.True(t, custody.Equals(custody.Clone()))
	assert.False(t, custody.Equals(custody[:1]))

	owed, err := custody.Subtract(NewCoin(6, 0, "DAI"))
	require.NoError(t, err)
	assert.False(t, owed.IsNonNegative())
	assert.False(t, Coins(nil).IsPositive())
	assert.True(t, Coins(nil).IsNonNegative())
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":      {nil, nil},
		"normalized": {Coins{NewCoin(1, 0, "DAI"), NewCoin(1, 0, "LEX")}, nil},
		"unsorted":   {Coins{NewCoin(1, 0, "LEX"), NewCoin(1, 0, "DAI")}, errors.ErrState},
		"duplicated": {Coins{NewCoin(1, 0, "DAI"), NewCoin(1, 0, "DAI")}, errors.ErrState},
		"zero":       {Coins{NewCoin(0, 0, "DAI")}, errors.ErrState},
		"invalid":    {Coins{NewCoin(1, 0, "D")}, errors.ErrCurrency},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, tc.wantErr.Is(tc.coins.Validate()))
		})
	}
}
