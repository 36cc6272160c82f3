package admin

import (
	"context"
	"time"

	"xyzhotel/internal/models"
	"xyzhotel/internal/money"
	"xyzhotel/internal/services/stock"
	"xyzhotel/internal/utils"

	"github.com/shopspring/decimal"
)

// Overview is the aggregate dashboard shown to the administrator.
type Overview struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	Customers     CustomerStats     `json:"customers"`
	Bookings      BookingStats      `json:"bookings"`
	Revenue       RevenueStats      `json:"revenue"`
	WalletFloat   decimal.Decimal   `json:"wallet_float"`
	OccupancyDate string            `json:"occupancy_date"`
	Occupancy     []stock.Occupancy `json:"occupancy"`
}

type CustomerStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type BookingStats struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	// Active counts bookings that hold stock (PENDING + CONFIRMED).
	Active int64 `json:"active"`
}

// RevenueStats sums processed payments. Cancelled bookings keep their
// revenue since nothing is refunded.
type RevenueStats struct {
	Deposits decimal.Decimal `json:"deposits"`
	Balances decimal.Decimal `json:"balances"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

func (s *service) buildOverview(ctx context.Context) (*Overview, error) {
	now := s.config.Now()

	total, active, err := s.store.Customers().Counts(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.store.Bookings().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	bookings := BookingStats{
		Pending:   counts[models.BookingStatusPending],
		Confirmed: counts[models.BookingStatusConfirmed],
		Cancelled: counts[models.BookingStatusCancelled],
	}
	bookings.Active = bookings.Pending + bookings.Confirmed

	revenue, err := s.store.Bookings().ProcessedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	deposits := money.Round(revenue[models.PaymentTypeDeposit])
	balances := money.Round(revenue[models.PaymentTypeBalance])

	walletFloat, err := s.store.Wallets().TotalBalance(ctx)
	if err != nil {
		return nil, err
	}

	occupancy, err := s.stock.Occupancy(ctx, now)
	if err != nil {
		return nil, err
	}

	return &Overview{
		GeneratedAt: now.UTC(),
		Customers:   CustomerStats{Total: total, Active: active},
		Bookings:    bookings,
		Revenue: RevenueStats{
			Deposits: deposits,
			Balances: balances,
			Total:    deposits.Add(balances),
			Currency: money.ReferenceCurrency,
		},
		WalletFloat:   money.Round(walletFloat),
		OccupancyDate: utils.FormatDate(now),
		Occupancy:     occupancy,
	}, nil
}
