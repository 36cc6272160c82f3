package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"
	"xyzhotel/internal/money"
	"xyzhotel/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	store     repositories.Store
	converter *money.Converter
	config    Config
	metrics   MetricsCollector
}

// NewService creates a new ledger service
func NewService(store repositories.Store, converter *money.Converter, config Config, metrics MetricsCollector) Service {
	if store == nil {
		panic("store is required")
	}
	if converter == nil {
		panic("converter is required")
	}
	if config.DefaultReason == "" {
		config.DefaultReason = DefaultCreditReason
	}
	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:     store,
		converter: converter,
		config:    config,
		metrics:   metrics,
	}
}

func (s *service) CreditWallet(ctx context.Context, req CreditRequest) (res *CreditResult, err error) {
	defer s.observe(OperationCreditWallet, time.Now(), &err)

	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount.WithMessage("amount must be greater than zero")
	}
	currency := money.NormalizeCode(req.Currency)
	amount, err := s.converter.Convert(req.Amount, currency)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = s.config.DefaultReason
	}

	entry := Entry{Amount: amount, Reason: reason}
	if currency != money.ReferenceCurrency {
		entry.OriginalAmount = req.Amount
		entry.OriginalCurrency = currency
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		customer, err := tx.Customers().GetByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActive {
			return apperrors.ErrCustomerInactive
		}
		wallet, err := tx.Wallets().GetByCustomerIDForUpdate(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		txn, err := s.Credit(ctx, tx, wallet.ID, entry)
		if err != nil {
			return err
		}
		res = &CreditResult{Transaction: txn, Balance: txn.BalanceAfter}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Credit(ctx context.Context, tx repositories.Store, walletID uint, entry Entry) (txn *models.Transaction, err error) {
	defer s.observe(OperationCredit, time.Now(), &err)

	amount, err := validAmount(entry.Amount)
	if err != nil {
		return nil, err
	}
	balance, err := tx.Wallets().Increment(ctx, walletID, amount)
	if err != nil {
		return nil, err
	}
	txn, err = s.record(ctx, tx, walletID, models.TransactionTypeCredit, amount, balance, entry)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBalanceChange(walletID, amount)
	return txn, nil
}

func (s *service) Debit(ctx context.Context, tx repositories.Store, walletID uint, entry Entry) (txn *models.Transaction, err error) {
	defer s.observe(OperationDebit, time.Now(), &err)

	amount, err := validAmount(entry.Amount)
	if err != nil {
		return nil, err
	}
	balance, ok, err := tx.Wallets().DecrementIfSufficient(ctx, walletID, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInsufficientFunds
	}
	txn, err = s.record(ctx, tx, walletID, models.TransactionTypeDebit, amount, balance, entry)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBalanceChange(walletID, amount.Neg())
	return txn, nil
}

func (s *service) record(ctx context.Context, tx repositories.Store, walletID uint, txType string, amount, balance decimal.Decimal, entry Entry) (*models.Transaction, error) {
	txn := &models.Transaction{
		WalletID:         walletID,
		Reference:        uuid.NewString(),
		Type:             txType,
		Amount:           amount,
		Currency:         money.ReferenceCurrency,
		OriginalAmount:   entry.OriginalAmount,
		OriginalCurrency: entry.OriginalCurrency,
		Reason:           entry.Reason,
		BalanceAfter:     balance,
		Metadata:         entry.Metadata,
	}
	if err := tx.Wallets().CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) GetWallet(ctx context.Context, customerID uint) (*models.Wallet, error) {
	return s.store.Wallets().GetByCustomerID(ctx, customerID)
}

func (s *service) GetBalance(ctx context.Context, customerID uint) (decimal.Decimal, error) {
	wallet, err := s.GetWallet(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

func (s *service) History(ctx context.Context, customerID uint, limit, offset int) ([]models.Transaction, int64, error) {
	wallet, err := s.GetWallet(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}
	return s.store.Wallets().ListTransactions(ctx, wallet.ID, limit, offset)
}

// Reconcile reads the wallet and its log in one transaction so that a
// concurrent movement cannot be half-counted.
func (s *service) Reconcile(ctx context.Context, customerID uint) (*Reconciliation, error) {
	var rec *Reconciliation
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		wallet, err := tx.Wallets().GetByCustomerIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		net, err := tx.Wallets().NetTransactions(ctx, wallet.ID)
		if err != nil {
			return err
		}
		rec = &Reconciliation{
			CustomerID:    customerID,
			WalletID:      wallet.ID,
			StoredBalance: wallet.Balance,
			LedgerBalance: net,
			Consistent:    wallet.Balance.Equal(net),
		}
		return nil
	})
	return rec, err
}

func (s *service) observe(operation string, start time.Time, errp *error) {
	s.metrics.RecordOperationDuration(operation, time.Since(start))
	result := "success"
	if err := *errp; err != nil {
		result = "failure"
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			result = domainErr.Code
		}
	}
	s.metrics.RecordOperationResult(operation, result)
}

func validAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount.WithMessage("amount must be greater than zero")
	}
	return amount, nil
}
