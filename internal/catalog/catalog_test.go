package catalog

import (
	"errors"
	"testing"

	apperrors "xyzhotel/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Prices(t *testing.T) {
	c := Default()

	tests := []struct {
		category Category
		price    int64
		stock    int
	}{
		{Standard, 50, 10},
		{Superior, 100, 5},
		{Suite, 200, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			price, err := c.PricePerNight(tt.category)
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.price).Equal(price))

			stock, err := c.StockCount(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.stock, stock)
		})
	}
	assert.Equal(t, 1, c.CapacityPerRoom())
}

func TestCatalog_UnknownCategory(t *testing.T) {
	c := Default()

	_, err := c.PricePerNight("PENTHOUSE")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownCategory))

	_, err = c.Amenities("PENTHOUSE")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownCategory))

	_, err = c.ParseCategory("penthouse")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownCategory))
}

func TestCatalog_ParseCategory(t *testing.T) {
	cat, err := Default().ParseCategory(" suite ")
	require.NoError(t, err)
	assert.Equal(t, Suite, cat)
}

func TestCatalog_StockOverride(t *testing.T) {
	c, err := New(DefaultRoomTypes(), map[Category]int{Standard: 1, Suite: -4})
	require.NoError(t, err)

	stock, _ := c.StockCount(Standard)
	assert.Equal(t, 1, stock)
	stock, _ = c.StockCount(Suite)
	assert.Equal(t, 2, stock)
}

func TestCatalog_AmenitiesAreCopied(t *testing.T) {
	c := Default()
	a, err := c.Amenities(Superior)
	require.NoError(t, err)
	a[0] = "changed"

	again, _ := c.Amenities(Superior)
	assert.Equal(t, "Double bed", again[0])
	assert.Contains(t, again, "Minibar")
}

func TestCatalog_RejectsNonPositivePrice(t *testing.T) {
	_, err := New([]RoomType{{Category: Standard, PricePerNight: decimal.Zero}}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCatalog_CategoriesOrderedByPrice(t *testing.T) {
	assert.Equal(t, []Category{Standard, Superior, Suite}, Default().Categories())
}
