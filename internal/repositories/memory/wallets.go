package memory

import (
	"context"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
)

type walletRepository struct {
	b   backend
	now func() time.Time
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	return r.b.do(ctx, func(st *state) error {
		now := r.now()
		wallet.ID = st.id("wallets")
		wallet.Balance = decimal.Zero
		wallet.CreatedAt = now
		wallet.UpdatedAt = now
		st.wallets[wallet.ID] = *wallet
		return nil
	})
}

func (r *walletRepository) GetByCustomerID(ctx context.Context, customerID uint) (*models.Wallet, error) {
	var out *models.Wallet
	err := r.b.do(ctx, func(st *state) error {
		w, ok := findWallet(st, customerID)
		if !ok {
			return apperrors.ErrWalletNotFound
		}
		out = &w
		return nil
	})
	return out, err
}

// GetByCustomerIDForUpdate needs no row lock: transactions already run one
// at a time.
func (r *walletRepository) GetByCustomerIDForUpdate(ctx context.Context, customerID uint) (*models.Wallet, error) {
	return r.GetByCustomerID(ctx, customerID)
}

func findWallet(st *state, customerID uint) (models.Wallet, bool) {
	for _, w := range st.wallets {
		if w.CustomerID == customerID {
			return w, true
		}
	}
	return models.Wallet{}, false
}

func (r *walletRepository) Increment(ctx context.Context, walletID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.b.do(ctx, func(st *state) error {
		w, ok := st.wallets[walletID]
		if !ok {
			return apperrors.ErrWalletNotFound
		}
		w.Balance = w.Balance.Add(amount)
		w.UpdatedAt = r.now()
		st.wallets[walletID] = w
		balance = w.Balance
		return nil
	})
	return balance, err
}

func (r *walletRepository) DecrementIfSufficient(ctx context.Context, walletID uint, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	var balance decimal.Decimal
	var ok bool
	err := r.b.do(ctx, func(st *state) error {
		w, found := st.wallets[walletID]
		if !found || w.Balance.LessThan(amount) {
			return nil
		}
		w.Balance = w.Balance.Sub(amount)
		w.UpdatedAt = r.now()
		st.wallets[walletID] = w
		balance, ok = w.Balance, true
		return nil
	})
	return balance, ok, err
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return r.b.do(ctx, func(st *state) error {
		tx.ID = st.id("transactions")
		tx.CreatedAt = r.now()
		stored := *tx
		stored.Metadata = tx.Metadata.Clone()
		st.transactions = append(st.transactions, stored)
		return nil
	})
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	var total int64
	err := r.b.do(ctx, func(st *state) error {
		var mine []models.Transaction
		for i := len(st.transactions) - 1; i >= 0; i-- {
			if st.transactions[i].WalletID == walletID {
				mine = append(mine, st.transactions[i])
			}
		}
		total = int64(len(mine))
		out = page(mine, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *walletRepository) NetTransactions(ctx context.Context, walletID uint) (decimal.Decimal, error) {
	net := decimal.Zero
	err := r.b.do(ctx, func(st *state) error {
		for i := range st.transactions {
			if st.transactions[i].WalletID == walletID {
				net = net.Add(st.transactions[i].Signed())
			}
		}
		return nil
	})
	return net, err
}

func (r *walletRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.b.do(ctx, func(st *state) error {
		for _, w := range st.wallets {
			total = total.Add(w.Balance)
		}
		return nil
	})
	return total, err
}
