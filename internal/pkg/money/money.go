// Package money provides exact monetary arithmetic backed by math/big.Rat.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

var (
	// ErrInvalidAmount is returned when a string cannot be parsed as an amount.
	ErrInvalidAmount = errors.New("invalid monetary amount")
	// ErrOverflow is returned when a value does not fit the int64 numerator/denominator storage.
	ErrOverflow = errors.New("monetary value exceeds storage capacity")
)

// maxDecimalPlaces bounds the decimal rendering attempted by MarshalJSON.
const maxDecimalPlaces = 18

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// The zero value is not usable; construct with New, Zero, FromInt or Parse.
type Money struct {
	rat *big.Rat
}

// New creates a Money from numerator and denominator.
// Example: New(249900, 100) represents 2499.00
func New(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	if denominator < 0 {
		return nil, fmt.Errorf("denominator must be positive, got %d", denominator)
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustNew is New for constants in tests and fixtures. It panics on an invalid denominator.
func MustNew(numerator, denominator int64) *Money {
	m, err := New(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// FromInt returns a whole-unit amount.
func FromInt(units int64) *Money {
	return &Money{rat: new(big.Rat).SetInt64(units)}
}

// FromRat creates a Money from a big.Rat. A nil rat yields zero.
func FromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Parse reads a decimal ("12.50"), exponent ("1e2") or fraction ("25/2") amount.
func Parse(s string) (*Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidAmount
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return &Money{rat: rat}, nil
}

// Numerator returns the numerator of the normalized rational and whether it fits in int64.
func (m *Money) Numerator() (int64, bool) {
	num := m.rat.Num()
	return num.Int64(), num.IsInt64()
}

// Denominator returns the denominator of the normalized rational and whether it fits in int64.
func (m *Money) Denominator() (int64, bool) {
	denom := m.rat.Denom()
	return denom.Int64(), denom.IsInt64()
}

// Parts returns numerator and denominator for storage, or ErrOverflow.
func (m *Money) Parts() (int64, int64, error) {
	num, okNum := m.Numerator()
	denom, okDenom := m.Denominator()
	if !okNum || !okDenom {
		return 0, 0, ErrOverflow
	}
	return num, denom, nil
}

// Add returns m + other.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract returns m - other.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyInt returns m * n.
func (m *Money) MultiplyInt(n int64) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, new(big.Rat).SetInt64(n))}
}

// MultiplyByRat returns m * rat.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if m < other.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if m > other.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if m == other.
func (m *Money) Equals(other *Money) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// Rat returns a copy of the underlying rational.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// String renders the value with two decimals.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy. Copy of nil is nil.
func (m *Money) Copy() *Money {
	if m == nil {
		return nil
	}
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MarshalJSON renders a JSON number when the value has a finite decimal expansion,
// and a quoted fraction ("1/3") otherwise, so that decoding is always exact.
func (m *Money) MarshalJSON() ([]byte, error) {
	if places, ok := decimalPlaces(m.rat.Denom()); ok {
		if places < 2 {
			places = 2
		}
		return []byte(m.rat.FloatString(places)), nil
	}
	return []byte(`"` + m.rat.RatString() + `"`), nil
}

// UnmarshalJSON accepts a JSON number or a string holding any format Parse accepts.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: null", ErrInvalidAmount)
	}
	s := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}

// decimalPlaces reports the number of decimals needed to print a value with this
// denominator exactly, if it is of the form 2^a * 5^b.
func decimalPlaces(denom *big.Int) (int, bool) {
	d := new(big.Int).Set(denom)
	two, five := big.NewInt(2), big.NewInt(5)
	var twos, fives int
	rem := new(big.Int)
	for {
		q, r := new(big.Int).QuoRem(d, two, rem)
		if r.Sign() != 0 {
			break
		}
		d, twos = q, twos+1
	}
	for {
		q, r := new(big.Int).QuoRem(d, five, rem)
		if r.Sign() != 0 {
			break
		}
		d, fives = q, fives+1
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	places := int(math.Max(float64(twos), float64(fives)))
	if places > maxDecimalPlaces {
		return 0, false
	}
	return places, true
}
