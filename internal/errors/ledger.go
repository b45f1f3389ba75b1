package errors

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrDailyLimitExceeded = &DomainError{
		Code:    "DAILY_LIMIT_EXCEEDED",
		Message: "daily operation limit exceeded",
	}
	ErrProofRequired = &DomainError{
		Code:    "PROOF_REQUIRED",
		Message: "payment proof is required for this amount",
	}
	ErrInvalidStateTransition = &DomainError{
		Code:    "INVALID_STATE_TRANSITION",
		Message: "operation is not in a valid state for this action",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrOperationNotFound = &DomainError{
		Code:    "OPERATION_NOT_FOUND",
		Message: "wallet operation not found",
	}
	ErrInvalidReason = &DomainError{
		Code:    "INVALID_REASON",
		Message: "reason must be between 10 and 255 characters",
	}
	ErrInvalidAdjustmentType = &DomainError{
		Code:    "INVALID_ADJUSTMENT_TYPE",
		Message: "adjustment type must be credit or debit",
	}
	ErrOperationTimeout = &DomainError{
		Code:    "OPERATION_TIMEOUT",
		Message: "operation timed out waiting for the ledger",
	}
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "an identified admin principal is required",
	}
)
