package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. The bet_* types are emitted by the betting subsystem,
// which shares this log but lives outside the ledger core.
const (
	TransactionTypeDeposit     = "deposit"
	TransactionTypeWithdrawal  = "withdrawal"
	TransactionTypeAdminCredit = "admin_credit"
	TransactionTypeAdminDebit  = "admin_debit"
	TransactionTypeBetPlaced   = "bet_placed"
	TransactionTypeBetWon      = "bet_won"
	TransactionTypeBetRefund   = "bet_refund"
)

// Transaction statuses
const (
	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
	TransactionStatusFailed    = "failed"
)

// CreditTransactionTypes lists the types that increase a wallet balance.
// Everything else in the log decreases it. Replaying the log with these
// signs must reproduce the wallet's current balance.
var CreditTransactionTypes = []string{
	TransactionTypeDeposit,
	TransactionTypeAdminCredit,
	TransactionTypeBetWon,
	TransactionTypeBetRefund,
}

// Transaction is an append-only ledger entry recording a single balance
// mutation. Entries are written in the same database transaction as the
// wallet update and are never modified or deleted afterwards.
type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	WalletID    uint            `gorm:"not null;index:idx_transactions_wallet_created,priority:1" json:"wallet_id"`
	Type        string          `gorm:"not null;index:idx_transactions_type_status,priority:1" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status      string          `gorm:"not null;default:'completed';index:idx_transactions_type_status,priority:2" json:"status"`
	Description string          `json:"description"`
	Metadata    JSON            `gorm:"type:jsonb" json:"metadata"`
	Reference   string          `gorm:"uniqueIndex" json:"reference"`
	CreatedAt   time.Time       `gorm:"index:idx_transactions_wallet_created,priority:2" json:"created_at"`
}

// IsCredit reports whether the entry increases the wallet balance.
func (t *Transaction) IsCredit() bool {
	for _, ct := range CreditTransactionTypes {
		if t.Type == ct {
			return true
		}
	}
	return false
}

// SignedAmount returns the amount with the sign it contributes to the
// wallet balance when the log is replayed.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}
