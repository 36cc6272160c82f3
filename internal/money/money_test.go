package money

import (
	"errors"
	"testing"

	apperrors "xyzhotel/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"0.125", "0.13"},
		{"33.335", "33.34"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, d(tt.want).Equal(Round(d(tt.in))), "got %s", Round(d(tt.in)))
		})
	}
}

func TestHalf(t *testing.T) {
	assert.True(t, d("50").Equal(Half(d("100"))))
	assert.True(t, d("37.51").Equal(Half(d("75.01"))))
}

func TestConverter_Convert(t *testing.T) {
	c := MustNewConverter(DefaultRates())

	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
		wantErr  error
	}{
		{name: "reference currency is identity", amount: "100", currency: "EUR", want: "100"},
		{name: "empty code means reference", amount: "12.5", currency: "", want: "12.5"},
		{name: "lower case code", amount: "100", currency: "usd", want: "92"},
		{name: "rounded half-up", amount: "1", currency: "JPY", want: "0.01"},
		{name: "zero amount", amount: "0", currency: "GBP", want: "0"},
		{name: "unknown currency", amount: "10", currency: "XYZ", wantErr: apperrors.ErrUnsupportedCurrency},
		{name: "negative amount", amount: "-1", currency: "EUR", wantErr: apperrors.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(d(tt.amount), tt.currency)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestNewConverter_RejectsBadRates(t *testing.T) {
	_, err := NewConverter(RateTable{"USD": decimal.Zero})
	assert.Error(t, err)

	_, err = NewConverter(RateTable{"USD": d("-1")})
	assert.Error(t, err)
}

func TestNewConverter_CopiesTable(t *testing.T) {
	rates := RateTable{"USD": d("2")}
	c := MustNewConverter(rates)
	rates["USD"] = d("3")

	got, err := c.Convert(d("1"), "USD")
	require.NoError(t, err)
	assert.True(t, d("2").Equal(got))
	assert.True(t, c.Supports("eur"))
}
