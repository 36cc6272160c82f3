package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Administrator is the hotel's single back-office account. Slot is always 1
// and uniquely indexed, so the table can never hold a second row.
type Administrator struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Slot         int       `gorm:"uniqueIndex;not null;default:1;check:slot = 1" json:"-"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminClaims are carried by administrator access tokens.
type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
