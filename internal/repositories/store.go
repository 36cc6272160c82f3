package repositories

import (
	"context"
	"time"

	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
)

// Store groups the repositories that take part in one unit of work.
type Store interface {
	Customers() CustomerRepository
	Wallets() WalletRepository
	Bookings() BookingRepository
	Inventory() InventoryRepository
	Administrators() AdministratorRepository

	// ExecuteInTransaction runs fn against a transactional Store. The work is
	// committed when fn returns nil and rolled back otherwise.
	ExecuteInTransaction(ctx context.Context, fn func(tx Store) error) error
}

// CustomerRepository defines customer persistence
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Counts(ctx context.Context) (total, active int64, err error)
}

// WalletRepository defines wallet and ledger persistence. Balance changes
// are conditional updates; callers must pair each one with CreateTransaction
// inside the same transaction.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByCustomerID(ctx context.Context, customerID uint) (*models.Wallet, error)
	GetByCustomerIDForUpdate(ctx context.Context, customerID uint) (*models.Wallet, error)

	// Increment adds amount and returns the new balance.
	Increment(ctx context.Context, walletID uint, amount decimal.Decimal) (decimal.Decimal, error)
	// DecrementIfSufficient subtracts amount only when balance >= amount.
	// ok is false when the balance was too low; the wallet is then untouched.
	DecrementIfSufficient(ctx context.Context, walletID uint, amount decimal.Decimal) (balance decimal.Decimal, ok bool, err error)

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error)
	// NetTransactions returns credits minus debits for the wallet.
	NetTransactions(ctx context.Context, walletID uint) (decimal.Decimal, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}

// BookingRepository defines booking and payment persistence
type BookingRepository interface {
	// Create inserts the booking together with its Payments.
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Booking, int64, error)

	// TransitionStatus moves the booking from one status to another and
	// reports false when it was no longer in the expected status.
	TransitionStatus(ctx context.Context, id uint, from, to string, at time.Time) (bool, error)
	// MarkPaymentProcessed flips an unprocessed payment and reports false
	// when it had already been processed.
	MarkPaymentProcessed(ctx context.Context, paymentID, transactionID uint, at time.Time) (bool, error)

	ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]models.Booking, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// ProcessedRevenue sums processed payments by payment type.
	ProcessedRevenue(ctx context.Context) (map[string]decimal.Decimal, error)
}

// InventoryRepository tracks reserved rooms per category and night. Nights
// are dates at midnight UTC.
type InventoryRepository interface {
	// Reserved returns the reserved count per night, keyed by
	// utils.FormatDate. Nights without a row are reported as 0.
	Reserved(ctx context.Context, category string, nights []time.Time) (map[string]int, error)
	// LockNights creates missing rows and locks all of them in ascending
	// night order for the rest of the transaction.
	LockNights(ctx context.Context, category string, nights []time.Time) error
	// IncrementIfAvailable adds quantity to the night unless that would
	// exceed stock, in which case ok is false.
	IncrementIfAvailable(ctx context.Context, category string, night time.Time, quantity, stock int) (ok bool, err error)
	// Decrement releases quantity rooms, never going below zero.
	Decrement(ctx context.Context, category string, night time.Time, quantity int) error
}

// AdministratorRepository persists the single back-office account
type AdministratorRepository interface {
	Create(ctx context.Context, admin *models.Administrator) error
	GetByUsername(ctx context.Context, username string) (*models.Administrator, error)
	Count(ctx context.Context) (int64, error)
}
