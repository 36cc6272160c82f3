package models

import "time"

// RoomInventory counts the rooms of a category taken on one night. Rows are
// created lazily the first time a night is booked.
type RoomInventory struct {
	ID        uint      `gorm:"primarykey"`
	Category  string    `gorm:"uniqueIndex:idx_inventory_category_night;size:20;not null"`
	Night     time.Time `gorm:"uniqueIndex:idx_inventory_category_night;type:date;not null"`
	Reserved  int       `gorm:"not null;default:0;check:reserved >= 0"`
	UpdatedAt time.Time
}

func (RoomInventory) TableName() string {
	return "room_inventory"
}
