package customer

import (
	"context"
	"testing"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"
	"xyzhotel/internal/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		input     models.CreateCustomerInput
		wantEmail string
		wantPhone string
		wantErr   error
	}{
		{
			name:      "valid customer is normalized",
			input:     models.CreateCustomerInput{FullName: " Ada Lovelace ", Email: " Ada@Example.COM ", PhoneNumber: "+44 (20) 7946-0958"},
			wantEmail: "ada@example.com",
			wantPhone: "+442079460958",
		},
		{
			name:    "short name",
			input:   models.CreateCustomerInput{FullName: "A", Email: "a@example.com", PhoneNumber: "+15551234567"},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "bad email",
			input:   models.CreateCustomerInput{FullName: "Alan Turing", Email: "alan@", PhoneNumber: "+15551234567"},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "bad phone",
			input:   models.CreateCustomerInput{FullName: "Alan Turing", Email: "alan@example.com", PhoneNumber: "0123"},
			wantErr: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			svc := NewService(store)
			ctx := context.Background()

			customer, err := svc.Register(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				total, _, err := store.Customers().Counts(ctx)
				require.NoError(t, err)
				assert.Zero(t, total)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, customer.Email)
			assert.Equal(t, tt.wantPhone, customer.PhoneNumber)
			assert.True(t, customer.IsActive)

			wallet, err := store.Wallets().GetByCustomerID(ctx, customer.ID)
			require.NoError(t, err)
			assert.True(t, wallet.Balance.IsZero())
			assert.Equal(t, "EUR", wallet.Currency)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.Register(ctx, models.CreateCustomerInput{FullName: "Ada Lovelace", Email: "ada@example.com", PhoneNumber: "+15551234567"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.CreateCustomerInput{FullName: "Impostor", Email: "ADA@example.com", PhoneNumber: "+15557654321"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)

	total, _, err := store.Customers().Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSuspendAndReactivate(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	c, err := svc.Register(ctx, models.CreateCustomerInput{FullName: "Grace Hopper", Email: "grace@example.com", PhoneNumber: "+15551234567"})
	require.NoError(t, err)

	suspended, err := svc.Suspend(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, suspended.IsActive)

	active, err := svc.Reactivate(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, active.IsActive)

	_, err = svc.Suspend(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestList(t *testing.T) {
	svc := NewService(memory.NewStore())
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Register(ctx, models.CreateCustomerInput{FullName: "Guest " + email, Email: email, PhoneNumber: "+15551234567"})
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "c@example.com", page[0].Email)
}
