package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction directions
const (
	TransactionTypeCredit = "CREDIT"
	TransactionTypeDebit  = "DEBIT"
)

// ErrImmutableTransaction is returned by the persistence hooks when code
// tries to rewrite ledger history.
var ErrImmutableTransaction = errors.New("transactions are append-only")

// Transaction is one immutable wallet movement. Amount is always positive
// and in the reference currency; Type gives the direction.
type Transaction struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	WalletID         uint            `gorm:"index;not null" json:"wallet_id"`
	Reference        string          `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	Type             string          `gorm:"size:10;not null" json:"type"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency         string          `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	OriginalAmount   decimal.Decimal `gorm:"type:numeric(14,4)" json:"original_amount"`
	OriginalCurrency string          `gorm:"size:3" json:"original_currency"`
	Reason           string          `gorm:"type:text;not null" json:"reason"`
	BalanceAfter     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_after"`
	Metadata         JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Signed returns the amount with the sign of its direction.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutableTransaction
}

func (t *Transaction) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutableTransaction
}
