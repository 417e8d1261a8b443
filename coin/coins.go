package coin

import (
	"sort"

	"github.com/iov-one/lexlocker/errors"
)

// Coins is a set of holdings. A normalized set is sorted by ticker, holds
// one coin per ticker and no zero coins. Operations keep it normalized
// and never modify the receiver.
type Coins []Coin

// CombineCoins sums the given coins into a normalized set.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	return append(Coins(nil), cs...)
}

// index returns the position of ticker, or where it would be inserted.
func (cs Coins) index(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Add returns the set with c added. A holding that drops to zero is
// removed.
func (cs Coins) Add(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.index(c.Ticker)
	if !found {
		res = append(res, Coin{})
		copy(res[i+1:], res[i:])
		res[i] = c
		return res, nil
	}
	sum, err := res[i].Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = sum
	return res, nil
}

// Subtract returns the set with c taken away. The result may hold
// negative amounts.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Contains is true if the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	i, found := cs.index(c.Ticker)
	if !found {
		return c.IsZero()
	}
	return cs[i].IsGTE(c)
}

// Amount returns the holding of ticker, a zero coin if there is none.
func (cs Coins) Amount(ticker string) Coin {
	if i, found := cs.index(ticker); found {
		return cs[i]
	}
	return Coin{Ticker: ticker}
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive is true for a non empty set of positive holdings.
func (cs Coins) IsPositive() bool {
	return len(cs) > 0 && cs.IsNonNegative()
}

// IsNonNegative is true when no holding is negative. Normalized sets hold
// no zero coins so every holding must be positive.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if cs[i] != o[i] {
			return false
		}
	}
	return true
}

// Validate checks every coin and that the set is normalized.
func (cs Coins) Validate() error {
	var err error
	for i, c := range cs {
		err = errors.Append(err, errors.Wrapf(c.Validate(), "coin %d", i))
		if c.IsZero() {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "zero %s", c.Ticker))
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted by ticker"))
		}
	}
	return err
}
