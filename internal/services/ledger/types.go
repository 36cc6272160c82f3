package ledger

import (
	"time"

	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultCreditReason is recorded for top-ups without an explicit reason.
const DefaultCreditReason = "wallet top-up"

// Operation names reported to the MetricsCollector
const (
	OperationCredit       = "credit"
	OperationDebit        = "debit"
	OperationCreditWallet = "credit_wallet"
)

// Config holds ledger settings
type Config struct {
	DefaultReason string
}

// Entry describes one wallet movement. Amount is in the reference currency.
type Entry struct {
	Amount           decimal.Decimal
	Reason           string
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	Metadata         models.JSON
}

// CreditRequest is an external top-up in any supported currency.
type CreditRequest struct {
	CustomerID uint            `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Reason     string          `json:"reason"`
}

// CreditResult is returned by CreditWallet.
type CreditResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
}

// Reconciliation compares the stored balance with the transaction log.
type Reconciliation struct {
	CustomerID    uint            `json:"customer_id"`
	WalletID      uint            `json:"wallet_id"`
	StoredBalance decimal.Decimal `json:"stored_balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	Consistent    bool            `json:"consistent"`
}

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordBalanceChange(walletID uint, delta decimal.Decimal)
}
