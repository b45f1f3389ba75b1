package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType distinguishes the two approval workflows.
type OperationType string

const (
	OperationTypeDeposit    OperationType = "deposit"
	OperationTypeWithdrawal OperationType = "withdrawal"
)

// OperationStatus is the closed set of workflow states.
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusApproved  OperationStatus = "approved"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusRejected  OperationStatus = "rejected"
)

// operationTransitions is the only legal transition table:
// pending -> approved -> completed, or pending -> rejected.
var operationTransitions = map[OperationStatus][]OperationStatus{
	OperationStatusPending:  {OperationStatusApproved, OperationStatusRejected},
	OperationStatusApproved: {OperationStatusCompleted},
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s OperationStatus) CanTransitionTo(next OperationStatus) bool {
	for _, allowed := range operationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OperationStatus) IsTerminal() bool {
	return len(operationTransitions[s]) == 0
}

// WalletOperation is a deposit or withdrawal request that must pass an
// administrator approval workflow before the wallet is mutated. Amount is
// fixed at creation; the status only advances through the transition table.
// Deposits credit the wallet at approval; withdrawals debit at completion.
// Operations are retained forever for audit.
type WalletOperation struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"not null;index:idx_wallet_operations_user_type,priority:1" json:"user_id"`
	WalletID        uint            `gorm:"not null;index" json:"wallet_id"`
	Type            OperationType   `gorm:"not null;index:idx_wallet_operations_user_type,priority:2" json:"type"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status          OperationStatus `gorm:"not null;default:'pending';index" json:"status"`
	PaymentProofURL string          `json:"payment_proof_url,omitempty"`
	AdminProofURL   string          `json:"admin_proof_url,omitempty"`
	AdminNotes      string          `json:"admin_notes,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	ProcessedBy     *uint           `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
