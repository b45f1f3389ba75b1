package repositories

import (
	"context"
	"time"

	"palenque/internal/models"

	"github.com/shopspring/decimal"
)

// OperationFilter narrows ListOperations. Zero values mean "no filter".
type OperationFilter struct {
	UserID uint
	Type   models.OperationType
	Status models.OperationStatus
	From   time.Time
	To     time.Time
}

// OperationStat is one row of the grouped operation statistics.
type OperationStat struct {
	Type   models.OperationType   `json:"type"`
	Status models.OperationStatus `json:"status"`
	Count  int64                  `json:"count"`
	Total  decimal.Decimal        `json:"total"`
}

// LedgerRepository is the persistence surface of the ledger: wallets, the
// append-only transaction log, and wallet operations. Mutating callers are
// expected to work inside ExecuteInTransaction; the ForUpdate variants take
// a row lock that lasts until the surrounding transaction commits.
type LedgerRepository interface {
	// Wallets
	CreateWallet(wallet *models.Wallet) error
	GetWalletByUserID(userID uint) (*models.Wallet, error)
	GetWalletByUserIDForUpdate(userID uint) (*models.Wallet, error)
	GetWalletForUpdate(walletID uint) (*models.Wallet, error)
	SaveWallet(wallet *models.Wallet) error

	// Wallet operations
	CreateOperation(op *models.WalletOperation) error
	GetOperation(id uint) (*models.WalletOperation, error)
	GetOperationForUpdate(id uint) (*models.WalletOperation, error)
	SaveOperation(op *models.WalletOperation) error
	SumOperationAmounts(userID uint, opType models.OperationType, statuses []models.OperationStatus, since time.Time) (decimal.Decimal, error)
	ListOperations(filter OperationFilter, limit, offset int) ([]models.WalletOperation, int64, error)
	GetOperationStats() ([]OperationStat, error)

	// Transaction log (append-only; no update or delete exposed)
	CreateEntry(entry *models.Transaction) error
	ListEntriesByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.Transaction, int64, error)
	SumSignedEntries(walletID uint) (decimal.Decimal, error)

	// ExecuteInTransaction runs fn inside one database transaction. The
	// repository handed to fn is scoped to that transaction; either every
	// write in fn commits or none does.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
