package booking

import (
	"context"
	"time"

	"xyzhotel/internal/catalog"
	"xyzhotel/internal/models"
	"xyzhotel/internal/services/stock"

	"github.com/shopspring/decimal"
)

// Default limits
const (
	DefaultMaxNights  = stock.DefaultMaxNights
	DefaultSweepBatch = 100
	publishTimeout    = 5 * time.Second
)

// Config holds booking workflow settings
type Config struct {
	// HoldTTL is how long a PENDING booking keeps its rooms without a
	// deposit. Zero keeps holds until they are paid or cancelled.
	HoldTTL    time.Duration
	MaxNights  int
	SweepBatch int
	Now        func() time.Time
}

// Service defines the booking workflow
type Service interface {
	Quote(category string, quantity int, checkIn, checkOut time.Time) (*Quote, error)
	CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, error)
	PayDeposit(ctx context.Context, bookingID uint) (*models.Booking, error)
	PayBalance(ctx context.Context, bookingID uint) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID uint, limit, offset int) ([]models.Booking, int64, error)

	// ExpireHolds cancels PENDING bookings whose hold has lapsed and
	// returns how many were cancelled.
	ExpireHolds(ctx context.Context) (int, error)
}

// CreateRequest asks for Quantity rooms from CheckIn. The stay ends at
// CheckOut, or after Nights nights when CheckOut is zero.
type CreateRequest struct {
	CustomerID uint
	Category   string
	Quantity   int
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
}

// Quote is the price breakdown of a prospective booking.
type Quote struct {
	Category      catalog.Category `json:"category"`
	Quantity      int              `json:"quantity"`
	CheckIn       time.Time        `json:"check_in"`
	CheckOut      time.Time        `json:"check_out"`
	Nights        int              `json:"nights"`
	PricePerNight decimal.Decimal  `json:"price_per_night"`
	Total         decimal.Decimal  `json:"total_amount"`
	Deposit       decimal.Decimal  `json:"deposit_amount"`
	Balance       decimal.Decimal  `json:"balance_amount"`
}
