package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"

	"gorm.io/gorm"
)

type administratorRepository struct {
	db *gorm.DB
}

// Create relies on the unique slot index to refuse a second administrator.
func (r *administratorRepository) Create(ctx context.Context, admin *models.Administrator) error {
	admin.Slot = 1
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAdministratorExists
		}
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	return nil
}

func (r *administratorRepository) GetByUsername(ctx context.Context, username string) (*models.Administrator, error) {
	var admin models.Administrator
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get administrator: %w", err)
	}
	return &admin, nil
}

func (r *administratorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Administrator{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count administrators: %w", err)
	}
	return count, nil
}
