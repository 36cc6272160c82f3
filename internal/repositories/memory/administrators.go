package memory

import (
	"context"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"
)

type administratorRepository struct {
	b   backend
	now func() time.Time
}

func (r *administratorRepository) Create(ctx context.Context, admin *models.Administrator) error {
	return r.b.do(ctx, func(st *state) error {
		if st.admin != nil {
			return apperrors.ErrAdministratorExists
		}
		admin.ID = st.id("administrators")
		admin.Slot = 1
		admin.CreatedAt = r.now()
		stored := *admin
		st.admin = &stored
		return nil
	})
}

func (r *administratorRepository) GetByUsername(ctx context.Context, username string) (*models.Administrator, error) {
	var out models.Administrator
	err := r.b.do(ctx, func(st *state) error {
		if st.admin == nil || st.admin.Username != username {
			return apperrors.ErrInvalidCredentials
		}
		out = *st.admin
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *administratorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.b.do(ctx, func(st *state) error {
		if st.admin != nil {
			n = 1
		}
		return nil
	})
	return n, err
}
