package memory

import (
	"context"
	"sort"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"
)

type customerRepository struct {
	b   backend
	now func() time.Time
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.b.do(ctx, func(st *state) error {
		for _, c := range st.customers {
			if c.Email == customer.Email {
				return apperrors.ErrDuplicateEmail
			}
		}
		now := r.now()
		customer.ID = st.id("customers")
		customer.CreatedAt = now
		customer.UpdatedAt = now
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var out models.Customer
	err := r.b.do(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return apperrors.ErrCustomerNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var out *models.Customer
	err := r.b.do(ctx, func(st *state) error {
		for _, c := range st.customers {
			if c.Email == email {
				c := c
				out = &c
				return nil
			}
		}
		return apperrors.ErrCustomerNotFound
	})
	return out, err
}

func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	var out []models.Customer
	var total int64
	err := r.b.do(ctx, func(st *state) error {
		all := make([]models.Customer, 0, len(st.customers))
		for _, c := range st.customers {
			all = append(all, c)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
		total = int64(len(all))
		out = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *customerRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.b.do(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return apperrors.ErrCustomerNotFound
		}
		c.IsActive = active
		c.UpdatedAt = r.now()
		st.customers[id] = c
		return nil
	})
}

func (r *customerRepository) Counts(ctx context.Context) (int64, int64, error) {
	var total, active int64
	err := r.b.do(ctx, func(st *state) error {
		for _, c := range st.customers {
			total++
			if c.IsActive {
				active++
			}
		}
		return nil
	})
	return total, active, err
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), all[offset:end]...)
}
