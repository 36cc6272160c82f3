package models

import "time"

// Customer is a registered guest. Every customer owns exactly one wallet,
// created in the same transaction as the customer row.
type Customer struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	FullName    string    `gorm:"not null" json:"full_name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"not null" json:"phone_number"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCustomerInput is the registration payload.
type CreateCustomerInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}
