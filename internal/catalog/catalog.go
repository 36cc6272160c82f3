// Package catalog is the static room catalog: categories, nightly prices,
// amenities and the number of rooms the hotel owns per category.
package catalog

import (
	"sort"
	"strings"

	apperrors "xyzhotel/internal/errors"

	"github.com/shopspring/decimal"
)

// Category is a room category.
type Category string

const (
	Standard Category = "STANDARD"
	Superior Category = "SUPERIOR"
	Suite    Category = "SUITE"
)

// RoomType describes one category.
type RoomType struct {
	Category      Category        `json:"category"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Amenities     []string        `json:"amenities"`
	Stock         int             `json:"stock"`
}

// Catalog is immutable once built.
type Catalog struct {
	types map[Category]RoomType
}

// DefaultRoomTypes returns the hotel's published categories.
func DefaultRoomTypes() []RoomType {
	return []RoomType{
		{
			Category:      Standard,
			PricePerNight: decimal.NewFromInt(50),
			Amenities:     []string{"Single bed", "Wifi", "TV"},
			Stock:         10,
		},
		{
			Category:      Superior,
			PricePerNight: decimal.NewFromInt(100),
			Amenities:     []string{"Double bed", "Wifi", "Flat-screen TV", "Minibar", "Air conditioning"},
			Stock:         5,
		},
		{
			Category:      Suite,
			PricePerNight: decimal.NewFromInt(200),
			Amenities:     []string{"Double bed", "Wifi", "Flat-screen TV", "Minibar", "Air conditioning", "Bathtub", "Terrace"},
			Stock:         2,
		},
	}
}

// New builds a catalog. Stock overrides replace the stock count of the named
// categories; negative overrides are ignored.
func New(types []RoomType, stockOverrides map[Category]int) (*Catalog, error) {
	c := &Catalog{types: make(map[Category]RoomType, len(types))}
	for _, rt := range types {
		if !rt.PricePerNight.IsPositive() {
			return nil, apperrors.ErrInvalidInput.WithMessage("price for %s must be positive", rt.Category)
		}
		rt.Amenities = append([]string(nil), rt.Amenities...)
		if n, ok := stockOverrides[rt.Category]; ok && n >= 0 {
			rt.Stock = n
		}
		c.types[rt.Category] = rt
	}
	return c, nil
}

// Default is the published catalog without overrides.
func Default() *Catalog {
	c, _ := New(DefaultRoomTypes(), nil)
	return c
}

// ParseCategory accepts any letter case.
func (c *Catalog) ParseCategory(s string) (Category, error) {
	cat := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := c.types[cat]; !ok {
		return "", apperrors.ErrUnknownCategory.WithMessage("unknown room category %q", s)
	}
	return cat, nil
}

func (c *Catalog) lookup(cat Category) (RoomType, error) {
	rt, ok := c.types[cat]
	if !ok {
		return RoomType{}, apperrors.ErrUnknownCategory.WithMessage("unknown room category %q", cat)
	}
	return rt, nil
}

// PricePerNight returns the nightly price of one room.
func (c *Catalog) PricePerNight(cat Category) (decimal.Decimal, error) {
	rt, err := c.lookup(cat)
	if err != nil {
		return decimal.Zero, err
	}
	return rt.PricePerNight, nil
}

// Amenities returns a copy of the category's amenity list.
func (c *Catalog) Amenities(cat Category) ([]string, error) {
	rt, err := c.lookup(cat)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), rt.Amenities...), nil
}

// StockCount returns how many rooms of the category the hotel has.
func (c *Catalog) StockCount(cat Category) (int, error) {
	rt, err := c.lookup(cat)
	if err != nil {
		return 0, err
	}
	return rt.Stock, nil
}

// CapacityPerRoom is the number of occupants a room takes. Every category is
// single-occupancy.
func (c *Catalog) CapacityPerRoom() int {
	return 1
}

// RoomTypes lists every category ordered by price.
func (c *Catalog) RoomTypes() []RoomType {
	out := make([]RoomType, 0, len(c.types))
	for _, rt := range c.types {
		rt.Amenities = append([]string(nil), rt.Amenities...)
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PricePerNight.LessThan(out[j].PricePerNight)
	})
	return out
}

// Categories lists every category ordered by price.
func (c *Catalog) Categories() []Category {
	types := c.RoomTypes()
	out := make([]Category, len(types))
	for i, rt := range types {
		out[i] = rt.Category
	}
	return out
}
