package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByCustomerID(ctx context.Context, customerID uint) (*models.Wallet, error) {
	return r.find(r.db.WithContext(ctx), customerID)
}

func (r *walletRepository) GetByCustomerIDForUpdate(ctx context.Context, customerID uint) (*models.Wallet, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), customerID)
}

func (r *walletRepository) find(db *gorm.DB, customerID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where("customer_id = ?", customerID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Increment(ctx context.Context, walletID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	var wallet models.Wallet
	result := r.db.WithContext(ctx).
		Model(&wallet).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "balance"}}}).
		Where("id = ?", walletID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, apperrors.ErrWalletNotFound
	}
	return wallet.Balance, nil
}

func (r *walletRepository) DecrementIfSufficient(ctx context.Context, walletID uint, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	var wallet models.Wallet
	result := r.db.WithContext(ctx).
		Model(&wallet).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "balance"}}}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return decimal.Zero, false, fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, false, nil
	}
	return wallet.Balance, true, nil
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("wallet_id = ?", walletID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err = r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return txs, total, nil
}

func (r *walletRepository) NetTransactions(ctx context.Context, walletID uint) (decimal.Decimal, error) {
	var net decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", models.TransactionTypeCredit).
		Where("wallet_id = ?", walletID).
		Row()
	if err := row.Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return net, nil
}

func (r *walletRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&models.Wallet{}).Select("COALESCE(SUM(balance), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get total balance: %w", err)
	}
	return total, nil
}
