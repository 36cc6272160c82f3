package memory

import (
	"context"
	"sort"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
)

type bookingRepository struct {
	b   backend
	now func() time.Time
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.b.do(ctx, func(st *state) error {
		now := r.now()
		booking.ID = st.id("bookings")
		booking.CreatedAt = now
		booking.UpdatedAt = now
		for i := range booking.Payments {
			booking.Payments[i].ID = st.id("payments")
			booking.Payments[i].BookingID = booking.ID
			booking.Payments[i].CreatedAt = now
		}
		st.bookings[booking.ID] = copyBooking(*booking)
		return nil
	})
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var out models.Booking
	err := r.b.do(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return apperrors.ErrBookingNotFound
		}
		out = copyBooking(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Booking, int64, error) {
	var out []models.Booking
	var total int64
	err := r.b.do(ctx, func(st *state) error {
		var mine []models.Booking
		for _, b := range st.bookings {
			if b.CustomerID == customerID {
				mine = append(mine, copyBooking(b))
			}
		}
		sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
		total = int64(len(mine))
		out = page(mine, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *bookingRepository) TransitionStatus(ctx context.Context, id uint, from, to string, at time.Time) (bool, error) {
	var ok bool
	err := r.b.do(ctx, func(st *state) error {
		b, found := st.bookings[id]
		if !found || b.Status != from {
			return nil
		}
		b.Status = to
		b.UpdatedAt = at
		switch to {
		case models.BookingStatusConfirmed:
			b.HoldExpiresAt = nil
		case models.BookingStatusCancelled:
			cancelledAt := at
			b.CancelledAt = &cancelledAt
		}
		st.bookings[id] = b
		ok = true
		return nil
	})
	return ok, err
}

func (r *bookingRepository) MarkPaymentProcessed(ctx context.Context, paymentID, transactionID uint, at time.Time) (bool, error) {
	var ok bool
	err := r.b.do(ctx, func(st *state) error {
		for id, b := range st.bookings {
			for i := range b.Payments {
				p := &b.Payments[i]
				if p.ID != paymentID {
					continue
				}
				if p.IsProcessed {
					return nil
				}
				processedAt := at
				p.IsProcessed = true
				p.ProcessedAt = &processedAt
				if transactionID != 0 {
					txID := transactionID
					p.TransactionID = &txID
				}
				st.bookings[id] = b
				ok = true
				return nil
			}
		}
		return nil
	})
	return ok, err
}

func (r *bookingRepository) ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]models.Booking, error) {
	var out []models.Booking
	err := r.b.do(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if b.Status == models.BookingStatusPending && b.HoldExpiresAt != nil && !b.HoldExpiresAt.After(now) {
				out = append(out, copyBooking(b))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	err := r.b.do(ctx, func(st *state) error {
		for _, b := range st.bookings {
			counts[b.Status]++
		}
		return nil
	})
	return counts, err
}

func (r *bookingRepository) ProcessedRevenue(ctx context.Context) (map[string]decimal.Decimal, error) {
	revenue := make(map[string]decimal.Decimal)
	err := r.b.do(ctx, func(st *state) error {
		for _, b := range st.bookings {
			for _, p := range b.Payments {
				if p.IsProcessed {
					revenue[p.Type] = revenue[p.Type].Add(p.Amount)
				}
			}
		}
		return nil
	})
	return revenue, err
}
