package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOperationStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OperationStatus
		to      OperationStatus
		allowed bool
	}{
		{"pending to approved", OperationStatusPending, OperationStatusApproved, true},
		{"pending to rejected", OperationStatusPending, OperationStatusRejected, true},
		{"pending to completed", OperationStatusPending, OperationStatusCompleted, false},
		{"approved to completed", OperationStatusApproved, OperationStatusCompleted, true},
		{"approved to rejected", OperationStatusApproved, OperationStatusRejected, false},
		{"approved to pending", OperationStatusApproved, OperationStatusPending, false},
		{"completed to approved", OperationStatusCompleted, OperationStatusApproved, false},
		{"completed to rejected", OperationStatusCompleted, OperationStatusRejected, false},
		{"rejected to approved", OperationStatusRejected, OperationStatusApproved, false},
		{"rejected to completed", OperationStatusRejected, OperationStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOperationStatusTerminal(t *testing.T) {
	assert.False(t, OperationStatusPending.IsTerminal())
	assert.False(t, OperationStatusApproved.IsTerminal())
	assert.True(t, OperationStatusCompleted.IsTerminal())
	assert.True(t, OperationStatusRejected.IsTerminal())
}

func TestTransactionSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(25.50)

	credit := &Transaction{Type: TransactionTypeDeposit, Amount: amount}
	assert.True(t, credit.IsCredit())
	assert.True(t, credit.SignedAmount().Equal(amount))

	adminCredit := &Transaction{Type: TransactionTypeAdminCredit, Amount: amount}
	assert.True(t, adminCredit.IsCredit())

	debit := &Transaction{Type: TransactionTypeWithdrawal, Amount: amount}
	assert.False(t, debit.IsCredit())
	assert.True(t, debit.SignedAmount().Equal(amount.Neg()))

	adminDebit := &Transaction{Type: TransactionTypeAdminDebit, Amount: amount}
	assert.True(t, adminDebit.SignedAmount().IsNegative())
}

func TestWalletAvailable(t *testing.T) {
	w := &Wallet{
		Balance:      decimal.NewFromInt(100),
		FrozenAmount: decimal.NewFromInt(30),
	}
	assert.True(t, w.Available().Equal(decimal.NewFromInt(70)))
}
