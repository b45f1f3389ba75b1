package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"palenque/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) CreateWallet(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletForUpdate(walletID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, walletID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) SaveWallet(wallet *models.Wallet) error {
	result := r.db.Save(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to save wallet: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) CreateOperation(op *models.WalletOperation) error {
	result := r.db.Create(op)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet operation: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) GetOperation(id uint) (*models.WalletOperation, error) {
	var op models.WalletOperation
	if err := r.db.First(&op, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to get wallet operation: %w", err)
	}
	return &op, nil
}

func (r *ledgerRepository) GetOperationForUpdate(id uint) (*models.WalletOperation, error) {
	var op models.WalletOperation
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&op, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet operation: %w", err)
	}
	return &op, nil
}

func (r *ledgerRepository) SaveOperation(op *models.WalletOperation) error {
	result := r.db.Save(op)
	if result.Error != nil {
		return fmt.Errorf("failed to save wallet operation: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) SumOperationAmounts(userID uint, opType models.OperationType, statuses []models.OperationStatus, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&models.WalletOperation{}).
		Where("user_id = ? AND type = ? AND status IN ? AND created_at >= ?", userID, opType, statuses, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum operation amounts: %w", err)
	}
	return total, nil
}

func (r *ledgerRepository) ListOperations(filter OperationFilter, limit, offset int) ([]models.WalletOperation, int64, error) {
	query := r.db.Model(&models.WalletOperation{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet operations: %w", err)
	}

	var ops []models.WalletOperation
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ops).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wallet operations: %w", err)
	}
	return ops, total, nil
}

func (r *ledgerRepository) GetOperationStats() ([]OperationStat, error) {
	var stats []OperationStat
	err := r.db.Model(&models.WalletOperation{}).
		Select("type, status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Group("type, status").
		Order("type, status").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get operation stats: %w", err)
	}
	return stats, nil
}

func (r *ledgerRepository) CreateEntry(entry *models.Transaction) error {
	result := r.db.Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction entry: %w", result.Error)
	}
	return nil
}

func (r *ledgerRepository) ListEntriesByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("wallet_id = ?", walletID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var entries []models.Transaction
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return entries, total, nil
}

// SumSignedEntries replays the log for one wallet in SQL: credit types count
// positive, everything else negative. The result must equal the wallet's
// current balance (reconciliation invariant).
func (r *ledgerRepository) SumSignedEntries(walletID uint) (decimal.Decimal, error) {
	placeholders := make([]string, len(models.CreditTransactionTypes))
	args := []interface{}{}
	for i, t := range models.CreditTransactionTypes {
		placeholders[i] = "?"
		args = append(args, t)
	}
	caseExpr := fmt.Sprintf(
		"COALESCE(SUM(CASE WHEN type IN (%s) THEN amount ELSE -amount END), 0)",
		strings.Join(placeholders, ","),
	)

	var total decimal.Decimal
	err := r.db.Model(&models.Transaction{}).
		Where("wallet_id = ? AND status = ?", walletID, models.TransactionStatusCompleted).
		Select(caseExpr, args...).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return total, nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &ledgerRepository{db: tx}
		return fn(txRepo)
	})
}
