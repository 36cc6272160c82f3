package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking statuses
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking reserves Quantity rooms of one category for the nights in
// [CheckIn, CheckOut).
type Booking struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	CustomerID    uint            `gorm:"index;not null" json:"customer_id"`
	Category      string          `gorm:"size:20;not null" json:"category"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	CheckIn       time.Time       `gorm:"type:date;not null" json:"check_in"`
	CheckOut      time.Time       `gorm:"type:date;not null" json:"check_out"`
	Nights        int             `gorm:"not null" json:"nights"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	DepositAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deposit_amount"`
	BalanceAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_amount"`
	Status        string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	HoldExpiresAt *time.Time      `gorm:"index" json:"hold_expires_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	Payments      []Payment       `gorm:"foreignKey:BookingID" json:"payments"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsActive reports whether the booking still holds stock.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Payment returns the booking's payment of the given type, or nil.
func (b *Booking) Payment(paymentType string) *Payment {
	for i := range b.Payments {
		if b.Payments[i].Type == paymentType {
			return &b.Payments[i]
		}
	}
	return nil
}

// TotalPaid sums the processed payments.
func (b *Booking) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Payments {
		if p.IsProcessed {
			total = total.Add(p.Amount)
		}
	}
	return total
}
