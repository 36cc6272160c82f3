package memory

import (
	"context"
	"time"

	"xyzhotel/internal/utils"
)

type inventoryRepository struct {
	b backend
}

func (r *inventoryRepository) Reserved(ctx context.Context, category string, nights []time.Time) (map[string]int, error) {
	reserved := make(map[string]int, len(nights))
	err := r.b.do(ctx, func(st *state) error {
		for _, night := range nights {
			key := utils.FormatDate(night)
			reserved[key] = st.inventory[inventoryKey{category, key}]
		}
		return nil
	})
	return reserved, err
}

// LockNights only validates the context; the store lock already excludes
// every other writer.
func (r *inventoryRepository) LockNights(ctx context.Context, category string, nights []time.Time) error {
	return r.b.do(ctx, func(st *state) error { return nil })
}

func (r *inventoryRepository) IncrementIfAvailable(ctx context.Context, category string, night time.Time, quantity, stock int) (bool, error) {
	var ok bool
	err := r.b.do(ctx, func(st *state) error {
		key := inventoryKey{category, utils.FormatDate(night)}
		if st.inventory[key]+quantity > stock {
			return nil
		}
		st.inventory[key] += quantity
		ok = true
		return nil
	})
	return ok, err
}

func (r *inventoryRepository) Decrement(ctx context.Context, category string, night time.Time, quantity int) error {
	return r.b.do(ctx, func(st *state) error {
		key := inventoryKey{category, utils.FormatDate(night)}
		n := st.inventory[key] - quantity
		if n < 0 {
			n = 0
		}
		st.inventory[key] = n
		return nil
	})
}
