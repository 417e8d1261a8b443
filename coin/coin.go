package coin

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// IsCC reports whether a ticker is a valid currency code.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxInt bounds the whole part of any coin, 10^15-1.
	MaxInt int64 = 999999999999999
	MinInt       = -MaxInt

	// FracUnit is the number of fractional units in one whole unit.
	FracUnit int64 = 1000000000
	MaxFrac        = FracUnit - 1
	MinFrac        = -MaxFrac
)

// Coin is an amount of a single currency. The value is Whole plus
// Fractional / FracUnit, both parts carry the same sign.
type Coin struct {
	Ticker     string `json:"ticker"`
	Whole      int64  `json:"whole"`
	Fractional int64  `json:"fractional"`
}

var _ weave.Persistent = (*Coin)(nil)

// NewCoin returns a coin as given, without normalizing it.
func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Ticker: ticker, Whole: whole, Fractional: fractional}
}

// NewCoinp is NewCoin returning a pointer.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

func (c *Coin) Marshal() ([]byte, error) {
	return weave.Marshal(c)
}

func (c *Coin) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, c)
}

// IsEmpty is true for a nil or zero coin.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// build normalizes the parts of an amount so that the fraction is in
// range and shares the sign of the whole part.
func build(ticker string, whole, frac int64) (Coin, error) {
	whole += frac / FracUnit
	frac %= FracUnit
	switch {
	case whole > 0 && frac < 0:
		whole--
		frac += FracUnit
	case whole < 0 && frac > 0:
		whole++
		frac -= FracUnit
	}
	if whole > MaxInt || whole < MinInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d %s", whole, ticker)
	}
	return Coin{Ticker: ticker, Whole: whole, Fractional: frac}, nil
}

// Add returns the sum of both coins. A zero coin without a ticker adds
// nothing, any other pair must share the ticker.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.Ticker == "" && c.IsZero():
		return o, nil
	case o.Ticker == "" && o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	}
	return build(c.Ticker, c.Whole+o.Whole, c.Fractional+o.Fractional)
}

// Negative flips the sign of the amount.
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Whole: -c.Whole, Fractional: -c.Fractional}
}

func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Percent returns the share of the amount given in basis points, 10000
// being the whole amount. The amount is cut into fractional units of
// 1/10000 first, so the result is rounded toward zero.
func (c Coin) Percent(bps int64) (Coin, error) {
	if bps < 0 {
		return Coin{}, errors.Wrapf(errors.ErrInput, "negative rate %d", bps)
	}
	units := new(big.Int).Mul(big.NewInt(c.Whole), big.NewInt(FracUnit))
	units.Add(units, big.NewInt(c.Fractional))
	units.Quo(units, big.NewInt(10000))
	units.Mul(units, big.NewInt(bps))

	whole, frac := new(big.Int).QuoRem(units, big.NewInt(FracUnit), new(big.Int))
	if !whole.IsInt64() {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d bps of %s", bps, c)
	}
	return build(c.Ticker, whole.Int64(), frac.Int64())
}

// Compare orders two normalized amounts, ignoring tickers. It returns 1
// when c is larger and -1 when o is.
func (c Coin) Compare(o Coin) int {
	a, b := [2]int64{c.Whole, c.Fractional}, [2]int64{o.Whole, o.Fractional}
	for i := range a {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	return 0
}

func (c Coin) Equals(o Coin) bool {
	return c == o
}

func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

func (c Coin) IsPositive() bool {
	return c.Whole > 0 || (c.Whole == 0 && c.Fractional > 0)
}

func (c Coin) IsNonNegative() bool {
	return c.Whole >= 0 && c.Fractional >= 0
}

// IsGTE is true when both coins share a ticker and c is at least o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Compare(o) >= 0
}

func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone returns a copy of the coin, nil for nil.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate checks the ticker and the range and signs of both parts.
// Negative amounts are valid.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker))
	}
	if c.Whole > MaxInt || c.Whole < MinInt {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "whole"))
	}
	if c.Fractional > MaxFrac || c.Fractional < MinFrac {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	if (c.Whole > 0 && c.Fractional < 0) || (c.Whole < 0 && c.Fractional > 0) {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "parts differ in sign"))
	}
	return err
}

// String formats the coin as "<whole>[.<fraction>] <ticker>", which
// UnmarshalJSON accepts back.
func (c Coin) String() string {
	if n, err := build(c.Ticker, c.Whole, c.Fractional); err == nil {
		c = n
	}
	whole, frac, sign := c.Whole, c.Fractional, ""
	if whole < 0 || frac < 0 {
		whole, frac, sign = -whole, -frac, "-"
	}
	s := sign + strconv.FormatInt(whole, 10)
	if frac != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%09d", frac), "0")
	}
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

var humanFormat = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d{1,9}))?\s*([A-Z]{3,4})$`)

// ParseHumanFormat reads the format produced by String, like "12.5 DAI".
func ParseHumanFormat(s string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "coin %q", s)
	}
	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "whole part of %q", s)
	}
	var frac int64
	if m[3] != "" {
		// digits are padded to full fractional precision
		frac, err = strconv.ParseInt(m[3]+strings.Repeat("0", 9-len(m[3])), 10, 64)
		if err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInput, "fraction of %q", s)
		}
	}
	if m[1] == "-" {
		whole, frac = -whole, -frac
	}
	return NewCoin(whole, frac, m[4]), nil
}

// UnmarshalJSON accepts either the human format as a string or an object
// with ticker, whole and fractional fields.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if json.Unmarshal(raw, &human) == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	type fields Coin
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = Coin(f)
	return nil
}
