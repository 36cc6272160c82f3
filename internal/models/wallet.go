package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a customer's balance in the reference currency. The balance
// is only changed together with a Transaction row.
type Wallet struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	CustomerID uint            `gorm:"uniqueIndex;not null" json:"customer_id"`
	Balance    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	Currency   string          `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Ensure balance starts at 0
	w.Balance = decimal.Zero
	return nil
}
