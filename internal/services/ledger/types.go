package ledger

import (
	"context"

	"palenque/internal/models"

	"github.com/shopspring/decimal"
)

// AdjustmentType distinguishes the two direct admin paths.
type AdjustmentType string

const (
	AdjustmentCredit AdjustmentType = "credit"
	AdjustmentDebit  AdjustmentType = "debit"
)

// CreateOperationRequest is an owner's deposit or withdrawal request.
type CreateOperationRequest struct {
	UserID          uint
	Type            models.OperationType
	Amount          decimal.Decimal
	PaymentProofURL string
}

// AdjustmentRequest is a direct admin credit or debit, bypassing the
// approval workflow but still producing a ledger entry.
type AdjustmentRequest struct {
	TargetUserID uint
	AdminID      uint
	Type         AdjustmentType
	Amount       decimal.Decimal
	Reason       string
}

// AdjustmentResult carries the post-adjustment wallet and the ledger entry
// written for it.
type AdjustmentResult struct {
	Wallet      *models.Wallet      `json:"wallet"`
	Transaction *models.Transaction `json:"transaction"`
}

// ReconciliationReport compares a wallet's balance against the replayed
// transaction log.
type ReconciliationReport struct {
	WalletID  uint            `json:"wallet_id"`
	Balance   decimal.Decimal `json:"balance"`
	LedgerSum decimal.Decimal `json:"ledger_sum"`
	Balanced  bool            `json:"balanced"`
}

// CacheOperator defines the wallet caching operations the service needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}
