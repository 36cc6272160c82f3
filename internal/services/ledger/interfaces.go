package ledger

import (
	"context"

	"xyzhotel/internal/models"
	"xyzhotel/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service defines the wallet ledger
type Service interface {
	// CreditWallet converts the amount to euros and credits the customer's
	// wallet in its own transaction.
	CreditWallet(ctx context.Context, req CreditRequest) (*CreditResult, error)

	// Credit and Debit run inside the caller's transaction.
	Credit(ctx context.Context, tx repositories.Store, walletID uint, entry Entry) (*models.Transaction, error)
	Debit(ctx context.Context, tx repositories.Store, walletID uint, entry Entry) (*models.Transaction, error)

	GetWallet(ctx context.Context, customerID uint) (*models.Wallet, error)
	GetBalance(ctx context.Context, customerID uint) (decimal.Decimal, error)
	History(ctx context.Context, customerID uint, limit, offset int) ([]models.Transaction, int64, error)
	Reconcile(ctx context.Context, customerID uint) (*Reconciliation, error)
}
