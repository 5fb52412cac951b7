package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative monetary value. It preserves up to two fractional
// digits exactly and renders as a plain JSON number with two decimals, so a
// parsed "1428.73" round-trips byte-identically.
type Amount struct {
	dec decimal.Decimal
}

// ZeroAmount returns 0.00. The zero value of Amount is equivalent.
func ZeroAmount() Amount {
	return Amount{}
}

// NewAmount builds an Amount from a plain decimal string such as "1428.73".
// Currency symbols and thousands separators must already be removed; that
// normalization belongs to the extraction layer. Negative values and values
// with more than two fractional digits are rejected rather than rounded.
func NewAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("negative amount %q", s)
	}
	if d.Exponent() < -2 {
		return Amount{}, fmt.Errorf("amount %q has more than two fractional digits", s)
	}

	return Amount{dec: d}, nil
}

// MustAmount is NewAmount for fixtures and tests; it panics on invalid input.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the amount with exactly two fractional digits.
func (a Amount) String() string {
	return a.dec.StringFixed(2)
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.dec
}

// IsZero reports whether the amount is 0.00.
func (a Amount) IsZero() bool {
	return a.dec.IsZero()
}

// Equal reports whether two amounts represent the same value.
func (a Amount) Equal(b Amount) bool {
	return a.dec.Equal(b.dec)
}

// MarshalJSON emits the amount as an unquoted number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := NewAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
