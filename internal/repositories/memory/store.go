// Package memory is an in-process implementation of repositories.Store.
// Transactions are serializable: a single lock admits one unit of work at a
// time, and each one runs against a private copy of the state that replaces
// the shared state only on commit.
package memory

import (
	"context"
	"sync"
	"time"

	"xyzhotel/internal/models"
	"xyzhotel/internal/repositories"
)

type inventoryKey struct {
	category string
	night    string
}

type state struct {
	customers    map[uint]models.Customer
	wallets      map[uint]models.Wallet
	transactions []models.Transaction
	bookings     map[uint]models.Booking
	inventory    map[inventoryKey]int
	admin        *models.Administrator

	nextID map[string]uint
}

func newState() *state {
	return &state{
		customers: make(map[uint]models.Customer),
		wallets:   make(map[uint]models.Wallet),
		bookings:  make(map[uint]models.Booking),
		inventory: make(map[inventoryKey]int),
		nextID:    make(map[string]uint),
	}
}

func (s *state) clone() *state {
	c := &state{
		customers:    make(map[uint]models.Customer, len(s.customers)),
		wallets:      make(map[uint]models.Wallet, len(s.wallets)),
		transactions: make([]models.Transaction, len(s.transactions)),
		bookings:     make(map[uint]models.Booking, len(s.bookings)),
		inventory:    make(map[inventoryKey]int, len(s.inventory)),
		nextID:       make(map[string]uint, len(s.nextID)),
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	copy(c.transactions, s.transactions)
	for k, v := range s.bookings {
		c.bookings[k] = copyBooking(v)
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.nextID {
		c.nextID[k] = v
	}
	if s.admin != nil {
		admin := *s.admin
		c.admin = &admin
	}
	return c
}

func (s *state) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

func copyBooking(b models.Booking) models.Booking {
	b.Payments = append([]models.Payment(nil), b.Payments...)
	return b
}

// backend runs fn against the state it guards. The root store locks the
// shared state; a transactional store already holds the lock.
type backend interface {
	do(ctx context.Context, fn func(st *state) error) error
}

type rootBackend struct {
	mu sync.Mutex
	st *state
}

func (b *rootBackend) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.st)
}

type txBackend struct {
	st *state
}

func (b *txBackend) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(b.st)
}

// Store is the in-memory repositories.Store.
type Store struct {
	root *rootBackend
	b    backend
	now  func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	root := &rootBackend{st: newState()}
	return &Store{root: root, b: root, now: time.Now}
}

func (s *Store) Customers() repositories.CustomerRepository {
	return &customerRepository{b: s.b, now: s.now}
}

func (s *Store) Wallets() repositories.WalletRepository {
	return &walletRepository{b: s.b, now: s.now}
}

func (s *Store) Bookings() repositories.BookingRepository {
	return &bookingRepository{b: s.b, now: s.now}
}

func (s *Store) Inventory() repositories.InventoryRepository {
	return &inventoryRepository{b: s.b}
}

func (s *Store) Administrators() repositories.AdministratorRepository {
	return &administratorRepository{b: s.b, now: s.now}
}

// ExecuteInTransaction serializes fn with every other operation on the
// store. Nested calls join the enclosing transaction.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	if _, nested := s.b.(*txBackend); nested {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	work := s.root.st.clone()
	tx := &Store{root: s.root, b: &txBackend{st: work}, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	s.root.st = work
	return nil
}
