package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"xyzhotel/internal/catalog"
	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/events"
	"xyzhotel/internal/models"
	"xyzhotel/internal/money"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/repositories/memory"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/services/stock"
	cachekeys "xyzhotel/internal/utils/cache"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var guestSeq atomic.Int64

type fixture struct {
	store  *memory.Store
	svc    Service
	ledger ledger.Service
	stock  stock.Service
	clock  *clock
}

type options struct {
	stock     map[catalog.Category]int
	holdTTL   time.Duration
	publisher events.Publisher
	cache     repositories.CacheRepository
}

func newFixture(t *testing.T, opts options) *fixture {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultRoomTypes(), opts.stock)
	require.NoError(t, err)

	store := memory.NewStore()
	clk := &clock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	ledgerSvc := ledger.NewService(store, money.MustNewConverter(money.DefaultRates()), ledger.Config{}, nil)
	stockSvc := stock.NewService(store, cat, stock.Config{})
	svc := NewService(store, cat, stockSvc, ledgerSvc, opts.publisher, opts.cache, Config{
		HoldTTL: opts.holdTTL,
		Now:     clk.Now,
	})
	return &fixture{store: store, svc: svc, ledger: ledgerSvc, stock: stockSvc, clock: clk}
}

func (f *fixture) customer(t *testing.T, balance string) *models.Customer {
	t.Helper()
	ctx := context.Background()
	customer := &models.Customer{
		FullName:    "Guest",
		Email:       fmt.Sprintf("guest%d@example.com", guestSeq.Add(1)),
		PhoneNumber: "+15551230000",
		IsActive:    true,
	}
	err := f.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Customers().Create(ctx, customer); err != nil {
			return err
		}
		return tx.Wallets().Create(ctx, &models.Wallet{CustomerID: customer.ID, Currency: money.ReferenceCurrency})
	})
	require.NoError(t, err)

	if amount := dec(balance); amount.IsPositive() {
		_, err := f.ledger.CreditWallet(ctx, ledger.CreditRequest{CustomerID: customer.ID, Amount: amount})
		require.NoError(t, err)
	}
	return customer
}

func (f *fixture) balance(t *testing.T, customerID uint) decimal.Decimal {
	t.Helper()
	balance, err := f.ledger.GetBalance(context.Background(), customerID)
	require.NoError(t, err)
	return balance
}

func TestQuote(t *testing.T) {
	f := newFixture(t, options{})

	tests := []struct {
		name      string
		category  string
		quantity  int
		in, out   time.Time
		total     string
		deposit   string
		remainder string
		wantErr   error
	}{
		{"two standard nights", "STANDARD", 1, date(6, 1), date(6, 3), "100", "50", "50", nil},
		{"two superior rooms for three nights", "superior", 2, date(6, 1), date(6, 4), "600", "300", "300", nil},
		{"one suite night", "Suite", 1, date(6, 1), date(6, 2), "200", "100", "100", nil},
		{"zero quantity", "STANDARD", 0, date(6, 1), date(6, 2), "", "", "", apperrors.ErrInvalidQuantity},
		{"check-out before check-in", "STANDARD", 1, date(6, 3), date(6, 1), "", "", "", apperrors.ErrInvalidDateRange},
		{"same day", "STANDARD", 1, date(6, 3), date(6, 3), "", "", "", apperrors.ErrInvalidDateRange},
		{"over a year", "STANDARD", 1, date(6, 1), date(6, 1).AddDate(0, 0, 366), "", "", "", apperrors.ErrInvalidDateRange},
		{"unknown category", "PENTHOUSE", 1, date(6, 1), date(6, 2), "", "", "", apperrors.ErrUnknownCategory},
		{"more suites than the hotel has", "SUITE", 3, date(6, 1), date(6, 2), "", "", "", apperrors.ErrInsufficientStock},
		{"quantity that would overflow the total", "STANDARD", math.MaxInt/2 + 1, date(6, 1), date(6, 3), "", "", "", apperrors.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := f.svc.Quote(tt.category, tt.quantity, tt.in, tt.out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, q.Total.Equal(dec(tt.total)), "total %s", q.Total)
			assert.True(t, q.Deposit.Equal(dec(tt.deposit)), "deposit %s", q.Deposit)
			assert.True(t, q.Balance.Equal(dec(tt.remainder)), "balance %s", q.Balance)
		})
	}
}

func TestAmountsAlwaysSplitExactly(t *testing.T) {
	f := newFixture(t, options{})

	for _, category := range []string{"STANDARD", "SUPERIOR", "SUITE"} {
		for quantity := 1; quantity <= 2; quantity++ {
			for nights := 1; nights <= 9; nights++ {
				q, err := f.svc.Quote(category, quantity, date(7, 1), date(7, 1).AddDate(0, 0, nights))
				require.NoError(t, err)
				assert.True(t, q.Total.Equal(q.Deposit.Add(q.Balance)))
				assert.True(t, q.Deposit.Equal(money.Half(q.Total)))
				assert.Equal(t, nights, q.Nights)
			}
		}
	}
}

func TestLastStandardRoomCannotBeDoubleBooked(t *testing.T) {
	f := newFixture(t, options{stock: map[catalog.Category]int{catalog.Standard: 1}})
	ctx := context.Background()
	a := f.customer(t, "0")
	b := f.customer(t, "0")

	first, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: a.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, first.Status)
	assert.True(t, first.TotalAmount.Equal(dec("100")))
	assert.True(t, first.DepositAmount.Equal(dec("50")))
	assert.True(t, first.BalanceAmount.Equal(dec("50")))
	require.Len(t, first.Payments, 2)
	assert.False(t, first.Payment(models.PaymentTypeDeposit).IsProcessed)
	assert.False(t, first.Payment(models.PaymentTypeBalance).IsProcessed)

	_, err = f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: b.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 2), CheckOut: date(6, 4),
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	_, total, err := f.svc.ListCustomerBookings(ctx, b.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: b.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 3), CheckOut: date(6, 4),
	})
	assert.NoError(t, err)
}

func TestDepositWithInsufficientFunds(t *testing.T) {
	f := newFixture(t, options{})
	ctx := context.Background()
	customer := f.customer(t, "30")

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 3),
	})
	require.NoError(t, err)

	_, err = f.svc.PayDeposit(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	assert.True(t, f.balance(t, customer.ID).Equal(dec("30")))
	reloaded, err := f.svc.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, reloaded.Status)
	assert.False(t, reloaded.Payment(models.PaymentTypeDeposit).IsProcessed)

	free, err := f.stock.Available(ctx, catalog.Standard, date(6, 1), date(6, 3))
	require.NoError(t, err)
	assert.Equal(t, 9, free)

	_, err = f.ledger.CreditWallet(ctx, ledger.CreditRequest{CustomerID: customer.ID, Amount: dec("20")})
	require.NoError(t, err)
	confirmed, err := f.svc.PayDeposit(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	assert.True(t, f.balance(t, customer.ID).IsZero())
}

func TestBookPayAndCancelKeepsMoney(t *testing.T) {
	pub := new(MockPublisher)
	f := newFixture(t, options{publisher: pub})
	ctx := context.Background()
	customer := f.customer(t, "100")

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "SUPERIOR", Quantity: 1, CheckIn: date(6, 10), Nights: 2,
	})
	require.NoError(t, err)
	assert.True(t, booking.CheckOut.Equal(date(6, 12)))
	assert.True(t, booking.TotalAmount.Equal(dec("200")))
	assert.True(t, booking.DepositAmount.Equal(dec("100")))

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.BookingConfirmed && e.BookingID == booking.ID && e.Amount.Equal(dec("100"))
	})).Return(nil).Once()

	confirmed, err := f.svc.PayDeposit(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	deposit := confirmed.Payment(models.PaymentTypeDeposit)
	assert.True(t, deposit.IsProcessed)
	require.NotNil(t, deposit.TransactionID)
	assert.True(t, f.balance(t, customer.ID).IsZero())

	history, _, err := f.ledger.History(ctx, customer.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, fmt.Sprintf("deposit for booking #%d", booking.ID), history[0].Reason)
	assert.Equal(t, *deposit.TransactionID, history[0].ID)

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.BookingCancelled && e.Status == models.BookingStatusCancelled
	})).Return(errors.New("broker down")).Once()

	cancelled, err := f.svc.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.True(t, f.balance(t, customer.ID).IsZero())

	free, err := f.stock.Available(ctx, catalog.Superior, date(6, 10), date(6, 12))
	require.NoError(t, err)
	assert.Equal(t, 5, free)

	rec, err := f.ledger.Reconcile(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	pub.AssertExpectations(t)
}

func TestPayBalance(t *testing.T) {
	f := newFixture(t, options{})
	ctx := context.Background()
	customer := f.customer(t, "200")

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 5),
	})
	require.NoError(t, err)

	_, err = f.svc.PayBalance(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotConfirmed)

	_, err = f.svc.PayDeposit(ctx, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.PayDeposit(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotPending)

	paid, err := f.svc.PayBalance(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, paid.Status)
	assert.True(t, paid.Payment(models.PaymentTypeBalance).IsProcessed)
	assert.True(t, paid.TotalPaid().Equal(dec("200")))
	assert.True(t, f.balance(t, customer.ID).IsZero())

	_, err = f.svc.PayBalance(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBalanceAlreadyPaid)
}

func TestPayBalanceWithInsufficientFunds(t *testing.T) {
	f := newFixture(t, options{})
	ctx := context.Background()
	customer := f.customer(t, "120")

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "SUPERIOR", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 3),
	})
	require.NoError(t, err)
	_, err = f.svc.PayDeposit(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.PayBalance(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, f.balance(t, customer.ID).Equal(dec("20")))

	reloaded, err := f.svc.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Payment(models.PaymentTypeBalance).IsProcessed)
}

func TestCancelTransitions(t *testing.T) {
	f := newFixture(t, options{})
	ctx := context.Background()
	customer := f.customer(t, "0")

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "SUITE", Quantity: 2, CheckIn: date(8, 1), CheckOut: date(8, 2),
	})
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCancelled)
	_, err = f.svc.PayDeposit(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotPending)
	_, err = f.svc.PayBalance(ctx, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotConfirmed)
	_, err = f.svc.CancelBooking(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	free, err := f.stock.Available(ctx, catalog.Suite, date(8, 1), date(8, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, free)
}

func TestCreateBookingRejections(t *testing.T) {
	f := newFixture(t, options{})
	ctx := context.Background()
	active := f.customer(t, "0")
	suspended := f.customer(t, "0")
	require.NoError(t, f.store.Customers().SetActive(ctx, suspended.ID, false))

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"check-in in the past", CreateRequest{CustomerID: active.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(4, 30), CheckOut: date(5, 2)}, apperrors.ErrInvalidDateRange},
		{"missing check-out", CreateRequest{CustomerID: active.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1)}, apperrors.ErrInvalidDateRange},
		{"negative quantity", CreateRequest{CustomerID: active.ID, Category: "STANDARD", Quantity: -1, CheckIn: date(6, 1), CheckOut: date(6, 2)}, apperrors.ErrInvalidQuantity},
		{"more rooms than the hotel has", CreateRequest{CustomerID: active.ID, Category: "SUITE", Quantity: 3, CheckIn: date(6, 1), CheckOut: date(6, 2)}, apperrors.ErrInsufficientStock},
		{"unknown customer", CreateRequest{CustomerID: 999, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2)}, apperrors.ErrCustomerNotFound},
		{"suspended customer", CreateRequest{CustomerID: suspended.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2)}, apperrors.ErrCustomerInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateBooking(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	free, err := f.stock.Available(ctx, catalog.Standard, date(6, 1), date(6, 2))
	require.NoError(t, err)
	assert.Equal(t, 10, free)

	// Today is still bookable.
	_, err = f.svc.CreateBooking(ctx, CreateRequest{CustomerID: active.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(5, 1), CheckOut: date(5, 2)})
	assert.NoError(t, err)
}

func TestUnpaidHoldsExpire(t *testing.T) {
	pub := new(MockPublisher)
	f := newFixture(t, options{holdTTL: 15 * time.Minute, publisher: pub, stock: map[catalog.Category]int{catalog.Suite: 1}})
	ctx := context.Background()
	customer := f.customer(t, "500")

	expiring, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "SUITE", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2),
	})
	require.NoError(t, err)
	require.NotNil(t, expiring.HoldExpiresAt)

	f.clock.Advance(10 * time.Minute)
	n, err := f.svc.ExpireHolds(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Advance(5 * time.Minute)
	_, err = f.svc.PayDeposit(ctx, expiring.ID)
	assert.ErrorIs(t, err, apperrors.ErrHoldExpired)
	assert.True(t, f.balance(t, customer.ID).Equal(dec("500")))

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.BookingExpired && e.BookingID == expiring.ID
	})).Return(nil).Once()

	n, err = f.svc.ExpireHolds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expired, err := f.svc.GetBooking(ctx, expiring.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, expired.Status)

	// The room is free again.
	_, err = f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "SUITE", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2),
	})
	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestConfirmedBookingsDoNotExpire(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f := newFixture(t, options{holdTTL: time.Minute, publisher: pub})
	ctx := context.Background()
	customer := f.customer(t, "100")

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2),
	})
	require.NoError(t, err)
	confirmed, err := f.svc.PayDeposit(ctx, booking.ID)
	require.NoError(t, err)
	assert.Nil(t, confirmed.HoldExpiresAt)

	f.clock.Advance(time.Hour)
	n, err := f.svc.ExpireHolds(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExpireHoldsDisabled(t *testing.T) {
	f := newFixture(t, options{})
	customer := f.customer(t, "0")

	booking, err := f.svc.CreateBooking(context.Background(), CreateRequest{
		CustomerID: customer.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2),
	})
	require.NoError(t, err)
	assert.Nil(t, booking.HoldExpiresAt)

	f.clock.Advance(24 * 365 * time.Hour)
	n, err := f.svc.ExpireHolds(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMutationsInvalidateOverviewCache(t *testing.T) {
	cache := new(MockCache)
	f := newFixture(t, options{cache: cache})
	ctx := context.Background()
	customer := f.customer(t, "100")

	cache.On("Delete", mock.Anything, []string{cachekeys.AdminOverviewKey()}).Return(nil).Times(3)

	booking, err := f.svc.CreateBooking(ctx, CreateRequest{
		CustomerID: customer.ID, Category: "STANDARD", Quantity: 1, CheckIn: date(6, 1), CheckOut: date(6, 2),
	})
	require.NoError(t, err)
	_, err = f.svc.PayDeposit(ctx, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	cache.AssertExpectations(t)
}

func TestConcurrentCustomersRaceForLastSuite(t *testing.T) {
	f := newFixture(t, options{stock: map[catalog.Category]int{catalog.Suite: 1}})
	ctx := context.Background()

	const racers = 12
	customers := make([]*models.Customer, racers)
	for i := range customers {
		customers[i] = f.customer(t, "0")
	}

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateBooking(ctx, CreateRequest{
				CustomerID: customers[i].ID, Category: "SUITE", Quantity: 1, CheckIn: date(9, 1), CheckOut: date(9, 4),
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	}
	assert.Equal(t, 1, won)

	free, err := f.stock.Available(ctx, catalog.Suite, date(9, 1), date(9, 4))
	require.NoError(t, err)
	assert.Zero(t, free)
}
