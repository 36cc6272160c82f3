package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder is a gorm logger that keeps every statement it is shown.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, sql)
}

func (r *sqlRecorder) reset() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.statements
	r.statements = nil
	return out
}

// dryRunStore builds statements against the postgres dialect without a
// server. Nothing is executed, so every update reports zero rows.
func dryRunStore(t *testing.T) (Store, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=xyzhotel dbname=xyzhotel sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	require.NoError(t, err)
	return NewStore(db), rec
}

func TestConditionalUpdatesSQL(t *testing.T) {
	ctx := context.Background()
	night := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		run  func(s Store)
		want []string
	}{
		{
			name: "credit returns the new balance",
			run: func(s Store) {
				_, _ = s.Wallets().Increment(ctx, 3, decimal.NewFromInt(40))
			},
			want: []string{`UPDATE "wallets" SET "balance"=balance + `, `WHERE id = 3`, `RETURNING "balance"`},
		},
		{
			name: "debit only when the balance covers it",
			run: func(s Store) {
				_, _, _ = s.Wallets().DecrementIfSufficient(ctx, 7, decimal.NewFromInt(30))
			},
			want: []string{`SET "balance"=balance - `, `WHERE id = 7 AND balance >= `, `RETURNING "balance"`},
		},
		{
			name: "wallet row lock",
			run: func(s Store) {
				_, _ = s.Wallets().GetByCustomerIDForUpdate(ctx, 4)
			},
			want: []string{`FROM "wallets" WHERE customer_id = 4`, `FOR UPDATE`},
		},
		{
			name: "reserve only within stock",
			run: func(s Store) {
				_, _ = s.Inventory().IncrementIfAvailable(ctx, "SUITE", night, 2, 5)
			},
			want: []string{`UPDATE "room_inventory" SET`, `"reserved"=reserved + 2`, `category = 'SUITE'`, `AND reserved + 2 <= 5`},
		},
		{
			name: "release never goes below zero",
			run: func(s Store) {
				_ = s.Inventory().Decrement(ctx, "SUITE", night, 1)
			},
			want: []string{`"reserved"=GREATEST(reserved - 1, 0)`, `category = 'SUITE'`},
		},
		{
			name: "status changes only from the expected state",
			run: func(s Store) {
				_, _ = s.Bookings().TransitionStatus(ctx, 9, models.BookingStatusPending, models.BookingStatusConfirmed, night)
			},
			want: []string{`UPDATE "bookings" SET`, `"status"='CONFIRMED'`, `"hold_expires_at"=NULL`, `WHERE id = 9 AND status = 'PENDING'`},
		},
		{
			name: "payment processed at most once",
			run: func(s Store) {
				_, _ = s.Bookings().MarkPaymentProcessed(ctx, 11, 0, night)
			},
			want: []string{`UPDATE "payments" SET`, `"is_processed"=true`, `"transaction_id"=NULL`, `WHERE id = 11 AND is_processed = false`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, rec := dryRunStore(t)
			tt.run(store)

			statements := rec.reset()
			require.NotEmpty(t, statements)
			sql := statements[len(statements)-1]
			for _, fragment := range tt.want {
				assert.Contains(t, sql, fragment)
			}
		})
	}
}

func TestLockNightsSQL(t *testing.T) {
	store, rec := dryRunStore(t)
	nights := []time.Time{
		time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 2, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Inventory().LockNights(context.Background(), "STANDARD", nights))

	statements := rec.reset()
	require.Len(t, statements, 2)
	assert.Contains(t, statements[0], `INSERT INTO "room_inventory"`)
	assert.Contains(t, statements[0], `ON CONFLICT ("category","night") DO NOTHING`)
	assert.Contains(t, statements[1], `category = 'STANDARD' AND night IN (`)
	assert.Contains(t, statements[1], `ORDER BY night ASC`)
	assert.Contains(t, statements[1], `FOR UPDATE`)
}

func TestDryRunMatchesNoRows(t *testing.T) {
	store, _ := dryRunStore(t)

	_, ok, err := store.Wallets().DecrementIfSufficient(context.Background(), 1, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.False(t, ok)

	reserved, err := store.Inventory().IncrementIfAvailable(context.Background(), "STANDARD", time.Now(), 1, 10)
	require.NoError(t, err)
	assert.False(t, reserved)
}
