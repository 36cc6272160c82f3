package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeDeposit = "DEPOSIT"
	PaymentTypeBalance = "BALANCE"
)

// Payment is one of the two instalments of a booking. Both are created
// unprocessed with the booking and flipped once the wallet debit commits.
type Payment struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	BookingID     uint            `gorm:"uniqueIndex:idx_payment_booking_type;not null" json:"booking_id"`
	Type          string          `gorm:"uniqueIndex:idx_payment_booking_type;size:10;not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	IsProcessed   bool            `gorm:"not null;default:false" json:"is_processed"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	TransactionID *uint           `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
