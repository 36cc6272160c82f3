// Package stock tracks room availability per category and night.
//
// A stay [checkIn, checkOut) occupies every night in the half-open range.
// Reserve locks the stay's night rows in ascending order and then applies a
// conditional increment per night, so two units of work competing for the
// last room serialize on the first shared night and the loser sees
// ErrInsufficientStock.
package stock

import (
	"context"
	"time"

	"xyzhotel/internal/catalog"
	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/utils"
)

// Service defines the stock manager
type Service interface {
	CheckAvailability(ctx context.Context, category catalog.Category, checkIn, checkOut time.Time, quantity int) (bool, error)
	// Available is the minimum number of free rooms across the stay's nights.
	Available(ctx context.Context, category catalog.Category, checkIn, checkOut time.Time) (int, error)

	// Reserve and Release run inside the caller's transaction.
	Reserve(ctx context.Context, tx repositories.Store, category catalog.Category, checkIn, checkOut time.Time, quantity int) error
	Release(ctx context.Context, tx repositories.Store, category catalog.Category, checkIn, checkOut time.Time, quantity int) error

	Occupancy(ctx context.Context, night time.Time) ([]Occupancy, error)
}

// Occupancy is one category's usage on a single night.
type Occupancy struct {
	Category catalog.Category `json:"category"`
	Reserved int              `json:"reserved"`
	Stock    int              `json:"stock"`
	Rate     float64          `json:"occupancy_rate"`
}

// DefaultMaxNights is the longest stay checked or reserved in one call.
const DefaultMaxNights = 365

// Config holds stock manager settings
type Config struct {
	MaxNights int
}

type service struct {
	store   repositories.Store
	catalog *catalog.Catalog
	config  Config
}

// NewService creates a new stock manager
func NewService(store repositories.Store, cat *catalog.Catalog, config Config) Service {
	if store == nil {
		panic("store is required")
	}
	if cat == nil {
		panic("catalog is required")
	}
	if config.MaxNights <= 0 {
		config.MaxNights = DefaultMaxNights
	}
	return &service{store: store, catalog: cat, config: config}
}

func (s *service) CheckAvailability(ctx context.Context, category catalog.Category, checkIn, checkOut time.Time, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, apperrors.ErrInvalidQuantity
	}
	free, err := s.Available(ctx, category, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return free >= quantity, nil
}

func (s *service) Available(ctx context.Context, category catalog.Category, checkIn, checkOut time.Time) (int, error) {
	stock, nights, err := s.stay(category, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	reserved, err := s.store.Inventory().Reserved(ctx, string(category), nights)
	if err != nil {
		return 0, err
	}

	free := stock
	for _, n := range reserved {
		if left := stock - n; left < free {
			free = left
		}
	}
	if free < 0 {
		free = 0
	}
	return free, nil
}

func (s *service) Reserve(ctx context.Context, tx repositories.Store, category catalog.Category, checkIn, checkOut time.Time, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidQuantity
	}
	stock, nights, err := s.stay(category, checkIn, checkOut)
	if err != nil {
		return err
	}
	if quantity > stock {
		return apperrors.ErrInsufficientStock.WithMessage("the hotel has only %d %s rooms", stock, category)
	}

	inv := tx.Inventory()
	if err := inv.LockNights(ctx, string(category), nights); err != nil {
		return err
	}
	for _, night := range nights {
		ok, err := inv.IncrementIfAvailable(ctx, string(category), night, quantity, stock)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInsufficientStock.WithMessage("not enough %s rooms left on %s", category, utils.FormatDate(night))
		}
	}
	return nil
}

func (s *service) Release(ctx context.Context, tx repositories.Store, category catalog.Category, checkIn, checkOut time.Time, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidQuantity
	}
	_, nights, err := s.stay(category, checkIn, checkOut)
	if err != nil {
		return err
	}

	inv := tx.Inventory()
	if err := inv.LockNights(ctx, string(category), nights); err != nil {
		return err
	}
	for _, night := range nights {
		if err := inv.Decrement(ctx, string(category), night, quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Occupancy(ctx context.Context, night time.Time) ([]Occupancy, error) {
	night = utils.DateOnly(night)
	key := utils.FormatDate(night)

	var out []Occupancy
	for _, rt := range s.catalog.RoomTypes() {
		reserved, err := s.store.Inventory().Reserved(ctx, string(rt.Category), []time.Time{night})
		if err != nil {
			return nil, err
		}
		occ := Occupancy{Category: rt.Category, Reserved: reserved[key], Stock: rt.Stock}
		if rt.Stock > 0 {
			occ.Rate = float64(occ.Reserved) / float64(rt.Stock)
		}
		out = append(out, occ)
	}
	return out, nil
}

func (s *service) stay(category catalog.Category, checkIn, checkOut time.Time) (int, []time.Time, error) {
	stock, err := s.catalog.StockCount(category)
	if err != nil {
		return 0, nil, err
	}
	n := utils.NightsBetween(checkIn, checkOut)
	if n <= 0 {
		return 0, nil, apperrors.ErrInvalidDateRange
	}
	if n > s.config.MaxNights {
		return 0, nil, apperrors.ErrInvalidDateRange.WithMessage("a stay cannot exceed %d nights", s.config.MaxNights)
	}
	return stock, utils.StayNights(checkIn, checkOut), nil
}
