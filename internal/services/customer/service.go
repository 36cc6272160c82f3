// Package customer registers guests and manages their account status.
package customer

import (
	"context"
	"log"
	"strings"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"
	"xyzhotel/internal/money"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/utils/validation"
)

// Service defines the customer registry
type Service interface {
	// Register creates the customer and its empty wallet atomically.
	Register(ctx context.Context, input models.CreateCustomerInput) (*models.Customer, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error)
	Suspend(ctx context.Context, id uint) (*models.Customer, error)
	Reactivate(ctx context.Context, id uint) (*models.Customer, error)
}

type service struct {
	store repositories.Store
}

// NewService creates a new customer registry
func NewService(store repositories.Store) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store}
}

func (s *service) Register(ctx context.Context, input models.CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.FullName)
	email := validation.NormalizeEmail(input.Email)
	phone := validation.NormalizePhone(input.PhoneNumber)

	v := validation.New()
	v.Check(len([]rune(name)) >= validation.MinNameLength, "full_name", "must be at least 2 characters")
	v.Check(validation.IsEmail(email), "email", "invalid email format")
	v.Check(validation.IsPhone(phone), "phone_number", "invalid phone number format")
	if !v.Valid() {
		return nil, apperrors.ErrInvalidInput.WithMessage("%s", v.Error())
	}

	customer := &models.Customer{
		FullName:    name,
		Email:       email,
		PhoneNumber: phone,
		IsActive:    true,
	}
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Customers().Create(ctx, customer); err != nil {
			return err
		}
		return tx.Wallets().Create(ctx, &models.Wallet{
			CustomerID: customer.ID,
			Currency:   money.ReferenceCurrency,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("customer #%d registered", customer.ID)
	return customer, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.store.Customers().GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	return s.store.Customers().List(ctx, limit, offset)
}

func (s *service) Suspend(ctx context.Context, id uint) (*models.Customer, error) {
	return s.setActive(ctx, id, false)
}

func (s *service) Reactivate(ctx context.Context, id uint) (*models.Customer, error) {
	return s.setActive(ctx, id, true)
}

func (s *service) setActive(ctx context.Context, id uint, active bool) (*models.Customer, error) {
	var customer *models.Customer
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if err := tx.Customers().SetActive(ctx, id, active); err != nil {
			return err
		}
		var err error
		customer, err = tx.Customers().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}
