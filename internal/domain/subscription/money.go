package subscription

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It is written as a bare JSON number and read from a number or a numeric string.
type Money struct {
	d decimal.Decimal
}

var Zero = Money{d: decimal.Zero}

func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return Money{d: d}, nil
}

// MustMoney is ParseMoney for literals known to be valid.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}

	return m
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// HasCentsPrecision reports whether m needs no more than two decimal places.
func (m Money) HasCentsPrecision() bool {
	return m.d.Equal(m.d.Round(2))
}

func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

func (m Money) Mul(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

func (m Money) Div(n int64) Money {
	return Money{d: m.d.Div(decimal.NewFromInt(n))}
}

func (m Money) Round() Money {
	return Money{d: m.d.Round(2)}
}

// String keeps the stored precision: 15.5 stays 15.5.
func (m Money) String() string {
	return m.d.String()
}

// Format renders two decimals for display.
func (m Money) Format() string {
	return m.d.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts 15.49 as well as "15.49".
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	m.d = d

	return nil
}

// Schema mirrors UnmarshalJSON: a non-negative number or a numeric string.
func (m Money) Schema(_ huma.Registry) *huma.Schema {
	minimum := 0.0
	return &huma.Schema{
		Description: "Price in the account currency, at most two decimal places",
		Examples:    []any{15.49},
		OneOf: []*huma.Schema{
			{Type: huma.TypeNumber, Minimum: &minimum},
			{Type: huma.TypeString, Pattern: `^[0-9]+(\.[0-9]+)?$`},
		},
	}
}
