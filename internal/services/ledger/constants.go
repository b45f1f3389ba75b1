package ledger

import "palenque/internal/models"

// Adjustment reason bounds
const (
	MinReasonLength = 10
	MaxReasonLength = 255
)

// Descriptions written to the transaction log
const (
	descDepositApproved     = "Deposit approved"
	descWithdrawalCompleted = "Withdrawal completed"
	descAdminCredit         = "Admin credit adjustment"
	descAdminDebit          = "Admin debit adjustment"
)

// dailyLimitStatuses are the operation statuses counted toward the daily
// cap: anything not rejected still holds headroom.
var dailyLimitStatuses = []models.OperationStatus{
	models.OperationStatusPending,
	models.OperationStatusApproved,
	models.OperationStatusCompleted,
}
