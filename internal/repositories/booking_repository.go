package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct {
	db *gorm.DB
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	err = r.db.WithContext(ctx).Where("booking_id = ?", id).Order("id ASC").Find(&booking.Payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Booking, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("customer_id = ?", customerID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	err = r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *bookingRepository) TransitionStatus(ctx context.Context, id uint, from, to string, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case models.BookingStatusConfirmed:
		updates["hold_expires_at"] = nil
	case models.BookingStatusCancelled:
		updates["cancelled_at"] = at
	}

	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *bookingRepository) MarkPaymentProcessed(ctx context.Context, paymentID, transactionID uint, at time.Time) (bool, error) {
	var txRef interface{}
	if transactionID != 0 {
		txRef = transactionID
	}
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND is_processed = ?", paymentID, false).
		Updates(map[string]interface{}{
			"is_processed":   true,
			"processed_at":   at,
			"transaction_id": txRef,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark payment processed: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *bookingRepository) ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND hold_expires_at IS NOT NULL AND hold_expires_at <= ?", models.BookingStatusPending, now).
		Order("id ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired holds: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *bookingRepository) ProcessedRevenue(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("type, COALESCE(SUM(amount), 0)").
		Where("is_processed = ?", true).
		Group("type").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	defer rows.Close()

	revenue := make(map[string]decimal.Decimal)
	for rows.Next() {
		var paymentType string
		var sum decimal.Decimal
		if err := rows.Scan(&paymentType, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		revenue[paymentType] = sum
	}
	return revenue, rows.Err()
}
