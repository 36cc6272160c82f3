package repositories

import (
	"context"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the given database handle.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Customers() CustomerRepository {
	return &customerRepository{db: s.db}
}

func (s *gormStore) Wallets() WalletRepository {
	return &walletRepository{db: s.db}
}

func (s *gormStore) Bookings() BookingRepository {
	return &bookingRepository{db: s.db}
}

func (s *gormStore) Inventory() InventoryRepository {
	return &inventoryRepository{db: s.db}
}

func (s *gormStore) Administrators() AdministratorRepository {
	return &administratorRepository{db: s.db}
}

func (s *gormStore) ExecuteInTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
