// Package money holds the reference-currency arithmetic and the currency
// converter used to normalize wallet credits to euros.
package money

import (
	"fmt"
	"strings"

	apperrors "xyzhotel/internal/errors"

	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the currency every balance and total is stored in.
const ReferenceCurrency = "EUR"

// MinorUnits is the number of decimal places kept for the reference currency.
const MinorUnits = 2

// Round rounds to the reference currency minor unit, half-up.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MinorUnits)
}

// Half returns round(amount * 0.5).
func Half(amount decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(decimal.NewFromFloat(0.5)))
}

// RateTable maps a currency code to the number of euros one unit buys.
type RateTable map[string]decimal.Decimal

// DefaultRates covers the currencies the hotel accepts for wallet top-ups.
func DefaultRates() RateTable {
	return RateTable{
		"EUR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("1.17"),
		"CHF": decimal.RequireFromString("1.04"),
		"JPY": decimal.RequireFromString("0.0062"),
	}
}

// Converter converts amounts into the reference currency. It is safe for
// concurrent use; the table is copied at construction and never mutated.
type Converter struct {
	rates RateTable
}

// NewConverter validates the table and returns a converter over a copy of it.
// The reference currency is always present with rate 1.
func NewConverter(rates RateTable) (*Converter, error) {
	table := make(RateTable, len(rates)+1)
	for code, rate := range rates {
		code = NormalizeCode(code)
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", code, rate)
		}
		table[code] = rate
	}
	table[ReferenceCurrency] = decimal.NewFromInt(1)
	return &Converter{rates: table}, nil
}

// MustNewConverter is NewConverter for static tables known to be valid.
func MustNewConverter(rates RateTable) *Converter {
	c, err := NewConverter(rates)
	if err != nil {
		panic(err)
	}
	return c
}

// Convert returns amount expressed in euros, rounded to cents.
func (c *Converter) Convert(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, apperrors.ErrInvalidAmount.WithMessage("amount must not be negative")
	}
	code := NormalizeCode(currency)
	if code == ReferenceCurrency {
		return Round(amount), nil
	}
	rate, ok := c.rates[code]
	if !ok {
		return decimal.Zero, apperrors.ErrUnsupportedCurrency.WithMessage("unsupported currency %q", currency)
	}
	return Round(amount.Mul(rate)), nil
}

// Supports reports whether the currency has a rate.
func (c *Converter) Supports(currency string) bool {
	_, ok := c.rates[NormalizeCode(currency)]
	return ok
}

// Currencies lists the supported currency codes.
func (c *Converter) Currencies() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	return codes
}

// NormalizeCode upper-cases and trims a currency code. An empty code means
// the reference currency.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ReferenceCurrency
	}
	return code
}
