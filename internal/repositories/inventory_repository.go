package repositories

import (
	"context"
	"fmt"
	"time"

	"xyzhotel/internal/models"
	"xyzhotel/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryRepository struct {
	db *gorm.DB
}

func (r *inventoryRepository) Reserved(ctx context.Context, category string, nights []time.Time) (map[string]int, error) {
	reserved := make(map[string]int, len(nights))
	for _, night := range nights {
		reserved[utils.FormatDate(night)] = 0
	}
	if len(nights) == 0 {
		return reserved, nil
	}

	var rows []models.RoomInventory
	err := r.db.WithContext(ctx).
		Where("category = ? AND night IN ?", category, nights).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}
	for _, row := range rows {
		reserved[utils.FormatDate(row.Night)] = row.Reserved
	}
	return reserved, nil
}

func (r *inventoryRepository) LockNights(ctx context.Context, category string, nights []time.Time) error {
	if len(nights) == 0 {
		return nil
	}

	rows := make([]models.RoomInventory, len(nights))
	for i, night := range nights {
		rows[i] = models.RoomInventory{Category: category, Night: night}
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}, {Name: "night"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to create inventory rows: %w", err)
	}

	var locked []models.RoomInventory
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("category = ? AND night IN ?", category, nights).
		Order("night ASC").
		Find(&locked).Error
	if err != nil {
		return fmt.Errorf("failed to lock inventory rows: %w", err)
	}
	return nil
}

func (r *inventoryRepository) IncrementIfAvailable(ctx context.Context, category string, night time.Time, quantity, stock int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RoomInventory{}).
		Where("category = ? AND night = ? AND reserved + ? <= ?", category, night, quantity, stock).
		Updates(map[string]interface{}{
			"reserved":   gorm.Expr("reserved + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to reserve inventory: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *inventoryRepository) Decrement(ctx context.Context, category string, night time.Time, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.RoomInventory{}).
		Where("category = ? AND night = ?", category, night).
		Updates(map[string]interface{}{
			"reserved":   gorm.Expr("GREATEST(reserved - ?, 0)", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to release inventory: %w", result.Error)
	}
	return nil
}
