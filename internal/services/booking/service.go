package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"xyzhotel/internal/catalog"
	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/events"
	"xyzhotel/internal/models"
	"xyzhotel/internal/money"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/services/stock"
	"xyzhotel/internal/utils"
	cachekeys "xyzhotel/internal/utils/cache"

	"github.com/shopspring/decimal"
)

type service struct {
	store     repositories.Store
	catalog   *catalog.Catalog
	stock     stock.Service
	ledger    ledger.Service
	publisher events.Publisher
	cache     repositories.CacheRepository
	config    Config
}

// NewService creates a new booking workflow. publisher and cache are
// optional.
func NewService(
	store repositories.Store,
	cat *catalog.Catalog,
	stockSvc stock.Service,
	ledgerSvc ledger.Service,
	publisher events.Publisher,
	cache repositories.CacheRepository,
	config Config,
) Service {
	if store == nil {
		panic("store is required")
	}
	if cat == nil {
		panic("catalog is required")
	}
	if stockSvc == nil {
		panic("stock service is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if config.MaxNights <= 0 {
		config.MaxNights = DefaultMaxNights
	}
	if config.SweepBatch <= 0 {
		config.SweepBatch = DefaultSweepBatch
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &service{
		store:     store,
		catalog:   cat,
		stock:     stockSvc,
		ledger:    ledgerSvc,
		publisher: publisher,
		cache:     cache,
		config:    config,
	}
}

func (s *service) Quote(category string, quantity int, checkIn, checkOut time.Time) (*Quote, error) {
	cat, err := s.catalog.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}
	checkIn, checkOut = utils.DateOnly(checkIn), utils.DateOnly(checkOut)
	nights := utils.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, apperrors.ErrInvalidDateRange.WithMessage("check-out must be after check-in")
	}
	if nights > s.config.MaxNights {
		return nil, apperrors.ErrInvalidDateRange.WithMessage("a stay cannot exceed %d nights", s.config.MaxNights)
	}

	rooms, err := s.catalog.StockCount(cat)
	if err != nil {
		return nil, err
	}
	if quantity > rooms {
		return nil, apperrors.ErrInsufficientStock.WithMessage("the hotel has only %d %s rooms", rooms, cat)
	}

	price, err := s.catalog.PricePerNight(cat)
	if err != nil {
		return nil, err
	}
	total := money.Round(price.Mul(decimal.NewFromInt(int64(nights))).Mul(decimal.NewFromInt(int64(quantity))))
	deposit := money.Half(total)

	return &Quote{
		Category:      cat,
		Quantity:      quantity,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		PricePerNight: price,
		Total:         total,
		Deposit:       deposit,
		Balance:       total.Sub(deposit),
	}, nil
}

func (s *service) CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	checkOut := req.CheckOut
	if checkOut.IsZero() && req.Nights > 0 {
		checkOut = utils.DateOnly(req.CheckIn).AddDate(0, 0, req.Nights)
	}
	quote, err := s.Quote(req.Category, req.Quantity, req.CheckIn, checkOut)
	if err != nil {
		return nil, err
	}
	now := s.config.Now()
	if quote.CheckIn.Before(utils.DateOnly(now)) {
		return nil, apperrors.ErrInvalidDateRange.WithMessage("check-in date cannot be in the past")
	}

	booking := &models.Booking{
		CustomerID:    req.CustomerID,
		Category:      string(quote.Category),
		Quantity:      quote.Quantity,
		CheckIn:       quote.CheckIn,
		CheckOut:      quote.CheckOut,
		Nights:        quote.Nights,
		TotalAmount:   quote.Total,
		DepositAmount: quote.Deposit,
		BalanceAmount: quote.Balance,
		Status:        models.BookingStatusPending,
		Payments: []models.Payment{
			{Type: models.PaymentTypeDeposit, Amount: quote.Deposit},
			{Type: models.PaymentTypeBalance, Amount: quote.Balance},
		},
	}
	if s.config.HoldTTL > 0 {
		expires := now.Add(s.config.HoldTTL)
		booking.HoldExpiresAt = &expires
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		customer, err := tx.Customers().GetByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActive {
			return apperrors.ErrCustomerInactive
		}
		if err := s.stock.Reserve(ctx, tx, quote.Category, quote.CheckIn, quote.CheckOut, quote.Quantity); err != nil {
			return err
		}
		return tx.Bookings().Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("booking #%d created: %d %s room(s) %s to %s, total %s EUR",
		booking.ID, booking.Quantity, booking.Category,
		utils.FormatDate(booking.CheckIn), utils.FormatDate(booking.CheckOut), booking.TotalAmount.StringFixed(2))
	s.invalidateOverview(ctx)
	return booking, nil
}

func (s *service) PayDeposit(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var result *models.Booking
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		booking, err := tx.Bookings().GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPending {
			return apperrors.ErrBookingNotPending.WithMessage("booking #%d is %s", booking.ID, booking.Status)
		}
		now := s.config.Now()
		if booking.HoldExpiresAt != nil && !now.Before(*booking.HoldExpiresAt) {
			return apperrors.ErrHoldExpired
		}

		if err := s.pay(ctx, tx, booking, models.PaymentTypeDeposit, "deposit for booking #%d", now); err != nil {
			return err
		}
		ok, err := tx.Bookings().TransitionStatus(ctx, booking.ID, models.BookingStatusPending, models.BookingStatusConfirmed, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrBookingNotPending
		}

		result, err = tx.Bookings().GetByID(ctx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("booking #%d confirmed, deposit %s EUR paid", result.ID, result.DepositAmount.StringFixed(2))
	s.publish(events.BookingConfirmed, result, result.DepositAmount)
	s.invalidateOverview(ctx)
	return result, nil
}

func (s *service) PayBalance(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var result *models.Booking
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		booking, err := tx.Bookings().GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			return apperrors.ErrBookingNotConfirmed.WithMessage("booking #%d is %s", booking.ID, booking.Status)
		}
		if p := booking.Payment(models.PaymentTypeBalance); p != nil && p.IsProcessed {
			return apperrors.ErrBalanceAlreadyPaid
		}

		if err := s.pay(ctx, tx, booking, models.PaymentTypeBalance, "balance for booking #%d", s.config.Now()); err != nil {
			return err
		}
		result, err = tx.Bookings().GetByID(ctx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("booking #%d balance %s EUR paid", result.ID, result.BalanceAmount.StringFixed(2))
	s.invalidateOverview(ctx)
	return result, nil
}

// pay debits the payment's amount and marks it processed. A zero balance
// instalment is marked processed without touching the wallet.
func (s *service) pay(ctx context.Context, tx repositories.Store, booking *models.Booking, paymentType, reasonFormat string, now time.Time) error {
	payment := booking.Payment(paymentType)
	if payment == nil {
		return fmt.Errorf("booking #%d has no %s payment", booking.ID, paymentType)
	}
	if payment.IsProcessed {
		if paymentType == models.PaymentTypeBalance {
			return apperrors.ErrBalanceAlreadyPaid
		}
		return apperrors.ErrBookingNotPending
	}

	var txID uint
	if payment.Amount.IsPositive() {
		wallet, err := tx.Wallets().GetByCustomerIDForUpdate(ctx, booking.CustomerID)
		if err != nil {
			return err
		}
		txn, err := s.ledger.Debit(ctx, tx, wallet.ID, ledger.Entry{
			Amount: payment.Amount,
			Reason: fmt.Sprintf(reasonFormat, booking.ID),
			Metadata: models.NewJSON(map[string]interface{}{
				"booking_id":   booking.ID,
				"payment_type": paymentType,
			}),
		})
		if err != nil {
			return err
		}
		txID = txn.ID
	}

	ok, err := tx.Bookings().MarkPaymentProcessed(ctx, payment.ID, txID, now)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrBalanceAlreadyPaid
	}
	return nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	result, err := s.cancel(ctx, bookingID, func(*models.Booking) error { return nil })
	if err != nil {
		return nil, err
	}

	log.Printf("booking #%d cancelled, %d %s room(s) released", result.ID, result.Quantity, result.Category)
	s.publish(events.BookingCancelled, result, result.TotalPaid())
	s.invalidateOverview(ctx)
	return result, nil
}

// cancel moves the booking to CANCELLED and releases its rooms. check runs
// under the booking lock before anything changes. No money is returned to
// the wallet.
func (s *service) cancel(ctx context.Context, bookingID uint, check func(*models.Booking) error) (*models.Booking, error) {
	var result *models.Booking
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		booking, err := tx.Bookings().GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status == models.BookingStatusCancelled {
			return apperrors.ErrAlreadyCancelled
		}
		if err := check(booking); err != nil {
			return err
		}

		ok, err := tx.Bookings().TransitionStatus(ctx, booking.ID, booking.Status, models.BookingStatusCancelled, s.config.Now())
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrAlreadyCancelled
		}
		err = s.stock.Release(ctx, tx, catalog.Category(booking.Category), booking.CheckIn, booking.CheckOut, booking.Quantity)
		if err != nil {
			return err
		}

		result, err = tx.Bookings().GetByID(ctx, booking.ID)
		return err
	})
	return result, err
}

var errHoldStillValid = errors.New("hold no longer expired")

func (s *service) ExpireHolds(ctx context.Context) (int, error) {
	if s.config.HoldTTL <= 0 {
		return 0, nil
	}

	now := s.config.Now()
	expired, err := s.store.Bookings().ListExpiredHolds(ctx, now, s.config.SweepBatch)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, candidate := range expired {
		result, err := s.cancel(ctx, candidate.ID, func(b *models.Booking) error {
			if b.Status != models.BookingStatusPending || b.HoldExpiresAt == nil || now.Before(*b.HoldExpiresAt) {
				return errHoldStillValid
			}
			return nil
		})
		if errors.Is(err, errHoldStillValid) || errors.Is(err, apperrors.ErrAlreadyCancelled) {
			continue
		}
		if err != nil {
			return count, fmt.Errorf("failed to expire booking #%d: %w", candidate.ID, err)
		}

		count++
		log.Printf("booking #%d expired, %d %s room(s) released", result.ID, result.Quantity, result.Category)
		s.publish(events.BookingExpired, result, decimal.Zero)
	}
	if count > 0 {
		s.invalidateOverview(ctx)
	}
	return count, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return s.store.Bookings().GetByID(ctx, bookingID)
}

func (s *service) ListCustomerBookings(ctx context.Context, customerID uint, limit, offset int) ([]models.Booking, int64, error) {
	if _, err := s.store.Customers().GetByID(ctx, customerID); err != nil {
		return nil, 0, err
	}
	return s.store.Bookings().ListByCustomer(ctx, customerID, limit, offset)
}

func (s *service) publish(eventType string, b *models.Booking, amount decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Category:   b.Category,
		Quantity:   b.Quantity,
		CheckIn:    utils.FormatDate(b.CheckIn),
		CheckOut:   utils.FormatDate(b.CheckOut),
		Status:     b.Status,
		Amount:     amount,
		OccurredAt: s.config.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("⚠️ failed to publish %s for booking #%d: %v", eventType, b.ID, err)
	}
}

func (s *service) invalidateOverview(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cachekeys.AdminOverviewKey()); err != nil {
		log.Printf("⚠️ failed to invalidate admin overview cache: %v", err)
	}
}
