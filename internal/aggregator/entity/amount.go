package entity

import (
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Amount is an upstream number kept at full precision. It renders as a bare
// JSON number, or null when the upstream had no value.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount returns a valid Amount parsed from s, or an invalid one when s is
// not a number.
func NewAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{decimal.NullDecimal{Decimal: d, Valid: true}}
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.NullDecimal.UnmarshalJSON(b)
}

var _ json.Marshaler = Amount{}
