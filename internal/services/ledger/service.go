package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "palenque/internal/errors"
	"palenque/internal/models"
	"palenque/internal/repositories"
	"palenque/internal/services/limits"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the only component allowed to mutate wallet balances. Every
// public mutation runs as one database transaction: validations read the
// same transactional view as the subsequent writes, and a ledger entry is
// appended in the same transaction as the balance change.
type Service interface {
	// Wallets
	CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)

	// Operation workflow
	CreateOperation(ctx context.Context, req CreateOperationRequest) (*models.WalletOperation, error)
	ApproveOperation(ctx context.Context, operationID, adminID uint, notes string) (*models.WalletOperation, error)
	CompleteOperation(ctx context.Context, operationID, adminID uint, adminProofURL, notes string) (*models.WalletOperation, error)
	RejectOperation(ctx context.Context, operationID, adminID uint, reason, notes string) (*models.WalletOperation, error)
	AttachWithdrawalProof(ctx context.Context, operationID, adminID uint, adminProofURL string) (*models.WalletOperation, error)

	// Direct admin path
	AdjustBalance(ctx context.Context, req AdjustmentRequest) (*AdjustmentResult, error)

	// Reserved funds (used by the betting subsystem)
	FreezeFunds(ctx context.Context, userID uint, amount decimal.Decimal) (*models.Wallet, error)
	ReleaseFunds(ctx context.Context, userID uint, amount decimal.Decimal) (*models.Wallet, error)

	// Reads
	ListOperations(ctx context.Context, filter repositories.OperationFilter, limit, offset int) ([]models.WalletOperation, int64, error)
	GetOperationStats(ctx context.Context) ([]repositories.OperationStat, error)
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error)
	Reconcile(ctx context.Context, userID uint) (*ReconciliationReport, error)
}

type service struct {
	repo    repositories.LedgerRepository
	limits  limits.Service
	cache   CacheOperator
	metrics MetricsCollector
}

// NewService creates a new ledger service
func NewService(repo repositories.LedgerRepository, limitsPolicy limits.Service, cache CacheOperator, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if limitsPolicy == nil {
		panic("limits policy is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		limits:  limitsPolicy,
		cache:   cache,
		metrics: metrics,
	}
}

func (s *service) CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet := &models.Wallet{
		UserID:       userID,
		Balance:      decimal.Zero,
		FrozenAmount: decimal.Zero,
	}
	if err := s.repo.CreateWallet(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetWalletByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) CreateOperation(ctx context.Context, req CreateOperationRequest) (*models.WalletOperation, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("create_operation", time.Since(start)) }()

	if req.Type != models.OperationTypeDeposit && req.Type != models.OperationTypeWithdrawal {
		return nil, apperrors.ErrInvalidAmount.WithMessage("unknown operation type")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	lim := s.limits.Resolve(ctx, req.Type)
	if req.Amount.LessThan(lim.Min) {
		return nil, apperrors.ErrInvalidAmount.WithMessage(
			fmt.Sprintf("amount is below the minimum of %s", lim.Min))
	}
	if req.Amount.GreaterThan(lim.Max) {
		return nil, apperrors.ErrInvalidAmount.WithMessage(
			fmt.Sprintf("amount exceeds the maximum of %s", lim.Max))
	}
	if req.Type == models.OperationTypeDeposit &&
		req.Amount.GreaterThan(lim.ProofThreshold) && req.PaymentProofURL == "" {
		return nil, apperrors.ErrProofRequired
	}

	var op *models.WalletOperation
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		// The wallet lock serializes concurrent creates for the same user so
		// the daily sum below cannot miss a racing insert.
		wallet, err := tx.GetWalletByUserIDForUpdate(req.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return apperrors.ErrWalletNotFound
			}
			return err
		}

		dailyTotal, err := tx.SumOperationAmounts(req.UserID, req.Type, dailyLimitStatuses, startOfDay(time.Now()))
		if err != nil {
			return err
		}
		if dailyTotal.Add(req.Amount).GreaterThan(lim.DailyMax) {
			return apperrors.ErrDailyLimitExceeded.WithMessage(
				fmt.Sprintf("daily %s limit of %s exceeded", req.Type, lim.DailyMax))
		}

		op = &models.WalletOperation{
			UserID:          req.UserID,
			WalletID:        wallet.ID,
			Type:            req.Type,
			Amount:          req.Amount,
			Status:          models.OperationStatusPending,
			PaymentProofURL: req.PaymentProofURL,
		}
		return tx.CreateOperation(op)
	})
	if err != nil {
		s.metrics.RecordError("create_operation", errorType(err))
		return nil, s.translate(err)
	}
	return op, nil
}

func (s *service) ApproveOperation(ctx context.Context, operationID, adminID uint, notes string) (*models.WalletOperation, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("approve_operation", time.Since(start)) }()

	if adminID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	var op *models.WalletOperation
	var walletUserID uint
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		var err error
		op, err = lockOperation(tx, operationID)
		if err != nil {
			return err
		}
		if !op.Status.CanTransitionTo(models.OperationStatusApproved) {
			return apperrors.ErrInvalidStateTransition
		}

		now := time.Now()
		op.ProcessedBy = &adminID
		op.ProcessedAt = &now
		op.AdminNotes = notes
		op.Status = models.OperationStatusApproved

		// Deposits are funded on approval; withdrawals keep the funds
		// available until completion so they can still be rejected if the
		// balance check fails later.
		if op.Type == models.OperationTypeDeposit {
			wallet, err := tx.GetWalletForUpdate(op.WalletID)
			if err != nil {
				return err
			}
			walletUserID = wallet.UserID
			_, err = s.applyMutation(tx, wallet, mutationCredit, op.Amount,
				models.TransactionTypeDeposit, descDepositApproved, models.JSON{
					"operation_id": op.ID,
					"admin_id":     adminID,
				})
			if err != nil {
				return err
			}
		}

		return tx.SaveOperation(op)
	})
	if err != nil {
		s.metrics.RecordError("approve_operation", errorType(err))
		return nil, s.translate(err)
	}

	if walletUserID != 0 {
		s.cache.InvalidateWallet(ctx, walletUserID)
		s.metrics.RecordTransaction(models.TransactionTypeDeposit, op.Amount)
	}
	return op, nil
}

func (s *service) CompleteOperation(ctx context.Context, operationID, adminID uint, adminProofURL, notes string) (*models.WalletOperation, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("complete_operation", time.Since(start)) }()

	if adminID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	var op *models.WalletOperation
	var walletUserID uint
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		var err error
		op, err = lockOperation(tx, operationID)
		if err != nil {
			return err
		}
		if !op.Status.CanTransitionTo(models.OperationStatusCompleted) {
			return apperrors.ErrInvalidStateTransition
		}

		if op.Type == models.OperationTypeWithdrawal {
			if adminProofURL == "" {
				return apperrors.ErrProofRequired.WithMessage(
					"admin proof is required to complete a withdrawal")
			}
			wallet, err := tx.GetWalletForUpdate(op.WalletID)
			if err != nil {
				return err
			}
			// Balance may have dropped since approval; a failed check leaves
			// the operation approved so it can be retried or rejected later.
			walletUserID = wallet.UserID
			_, err = s.applyMutation(tx, wallet, mutationDebit, op.Amount,
				models.TransactionTypeWithdrawal, descWithdrawalCompleted, models.JSON{
					"operation_id": op.ID,
					"admin_id":     adminID,
				})
			if err != nil {
				return err
			}
		}

		now := time.Now()
		op.Status = models.OperationStatusCompleted
		op.CompletedAt = &now
		if adminProofURL != "" {
			op.AdminProofURL = adminProofURL
		}
		if notes != "" {
			op.AdminNotes = notes
		}
		return tx.SaveOperation(op)
	})
	if err != nil {
		s.metrics.RecordError("complete_operation", errorType(err))
		return nil, s.translate(err)
	}

	if walletUserID != 0 {
		s.cache.InvalidateWallet(ctx, walletUserID)
		s.metrics.RecordTransaction(models.TransactionTypeWithdrawal, op.Amount)
	}
	return op, nil
}

func (s *service) RejectOperation(ctx context.Context, operationID, adminID uint, reason, notes string) (*models.WalletOperation, error) {
	if adminID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if reason == "" {
		return nil, apperrors.ErrInvalidReason.WithMessage("rejection reason is required")
	}

	var op *models.WalletOperation
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		var err error
		op, err = lockOperation(tx, operationID)
		if err != nil {
			return err
		}
		if !op.Status.CanTransitionTo(models.OperationStatusRejected) {
			return apperrors.ErrInvalidStateTransition
		}

		now := time.Now()
		op.Status = models.OperationStatusRejected
		op.RejectionReason = reason
		op.ProcessedBy = &adminID
		op.ProcessedAt = &now
		if notes != "" {
			op.AdminNotes = notes
		}
		return tx.SaveOperation(op)
	})
	if err != nil {
		s.metrics.RecordError("reject_operation", errorType(err))
		return nil, s.translate(err)
	}
	return op, nil
}

func (s *service) AttachWithdrawalProof(ctx context.Context, operationID, adminID uint, adminProofURL string) (*models.WalletOperation, error) {
	if adminID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if adminProofURL == "" {
		return nil, apperrors.ErrProofRequired.WithMessage("admin proof URL is required")
	}

	var op *models.WalletOperation
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		var err error
		op, err = lockOperation(tx, operationID)
		if err != nil {
			return err
		}
		// Side-channel update, not a state transition: only approved
		// withdrawals may carry a payout proof before completion.
		if op.Type != models.OperationTypeWithdrawal || op.Status != models.OperationStatusApproved {
			return apperrors.ErrInvalidStateTransition
		}
		op.AdminProofURL = adminProofURL
		return tx.SaveOperation(op)
	})
	if err != nil {
		s.metrics.RecordError("attach_proof", errorType(err))
		return nil, s.translate(err)
	}
	return op, nil
}

func (s *service) AdjustBalance(ctx context.Context, req AdjustmentRequest) (*AdjustmentResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("adjust_balance", time.Since(start)) }()

	if req.AdminID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if req.Type != AdjustmentCredit && req.Type != AdjustmentDebit {
		return nil, apperrors.ErrInvalidAdjustmentType
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}
	if len(req.Reason) < MinReasonLength || len(req.Reason) > MaxReasonLength {
		return nil, apperrors.ErrInvalidReason
	}

	var result AdjustmentResult
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		wallet, err := tx.GetWalletByUserIDForUpdate(req.TargetUserID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return apperrors.ErrWalletNotFound
			}
			return err
		}

		direction := mutationCredit
		txType := models.TransactionTypeAdminCredit
		description := descAdminCredit
		if req.Type == AdjustmentDebit {
			direction = mutationDebit
			txType = models.TransactionTypeAdminDebit
			description = descAdminDebit
			if wallet.Balance.LessThan(req.Amount) {
				return apperrors.ErrInsufficientBalance.WithMessage(
					"Insufficient balance for debit adjustment")
			}
		}

		entry, err := s.applyMutation(tx, wallet, direction, req.Amount, txType, description, models.JSON{
			"admin_id": req.AdminID,
			"reason":   req.Reason,
		})
		if err != nil {
			return err
		}

		result.Wallet = wallet
		result.Transaction = entry
		return nil
	})
	if err != nil {
		s.metrics.RecordError("adjust_balance", errorType(err))
		return nil, s.translate(err)
	}

	s.cache.InvalidateWallet(ctx, req.TargetUserID)
	s.metrics.RecordTransaction(string(req.Type), req.Amount)
	return &result, nil
}

func (s *service) FreezeFunds(ctx context.Context, userID uint, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	var frozen *models.Wallet
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		wallet, err := tx.GetWalletByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return apperrors.ErrWalletNotFound
			}
			return err
		}
		if wallet.Available().LessThan(amount) {
			return apperrors.ErrInsufficientBalance.WithMessage(
				"insufficient available balance to freeze")
		}
		wallet.FrozenAmount = wallet.FrozenAmount.Add(amount)
		if err := tx.SaveWallet(wallet); err != nil {
			return err
		}
		frozen = wallet
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}

	s.cache.InvalidateWallet(ctx, userID)
	return frozen, nil
}

func (s *service) ReleaseFunds(ctx context.Context, userID uint, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	var released *models.Wallet
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		wallet, err := tx.GetWalletByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return apperrors.ErrWalletNotFound
			}
			return err
		}
		if wallet.FrozenAmount.LessThan(amount) {
			return apperrors.ErrInvalidAmount.WithMessage(
				"release exceeds frozen amount")
		}
		wallet.FrozenAmount = wallet.FrozenAmount.Sub(amount)
		if err := tx.SaveWallet(wallet); err != nil {
			return err
		}
		released = wallet
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}

	s.cache.InvalidateWallet(ctx, userID)
	return released, nil
}

func (s *service) ListOperations(ctx context.Context, filter repositories.OperationFilter, limit, offset int) ([]models.WalletOperation, int64, error) {
	return s.repo.ListOperations(filter, limit, offset)
}

func (s *service) GetOperationStats(ctx context.Context) ([]repositories.OperationStat, error) {
	return s.repo.GetOperationStats()
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListEntriesByWallet(ctx, wallet.ID, limit, offset)
}

// Reconcile replays the wallet's ledger entries and compares the signed sum
// with the stored balance.
func (s *service) Reconcile(ctx context.Context, userID uint) (*ReconciliationReport, error) {
	wallet, err := s.repo.GetWalletByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, err
	}

	sum, err := s.repo.SumSignedEntries(wallet.ID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationReport{
		WalletID:  wallet.ID,
		Balance:   wallet.Balance,
		LedgerSum: sum,
		Balanced:  wallet.Balance.Equal(sum),
	}, nil
}

// Internal helpers

type mutationDirection int

const (
	mutationCredit mutationDirection = iota
	mutationDebit
)

// applyMutation is the single funnel for every balance change. Both the
// operation workflow and admin adjustments go through it, so the
// reconciliation invariant (ledger replay equals balance) holds on every
// path. Must be called with the wallet row already locked, inside a
// transaction.
func (s *service) applyMutation(tx repositories.LedgerRepository, wallet *models.Wallet, direction mutationDirection, amount decimal.Decimal, txType, description string, metadata models.JSON) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	switch direction {
	case mutationCredit:
		wallet.Balance = wallet.Balance.Add(amount)
	case mutationDebit:
		if wallet.Balance.LessThan(amount) {
			return nil, apperrors.ErrInsufficientBalance
		}
		newBalance := wallet.Balance.Sub(amount)
		if newBalance.LessThan(wallet.FrozenAmount) {
			return nil, apperrors.ErrInsufficientBalance.WithMessage(
				"debit would dip into frozen funds")
		}
		wallet.Balance = newBalance
	}

	if err := tx.SaveWallet(wallet); err != nil {
		return nil, err
	}

	entry := &models.Transaction{
		WalletID:    wallet.ID,
		Type:        txType,
		Amount:      amount,
		Status:      models.TransactionStatusCompleted,
		Description: description,
		Metadata:    metadata,
		Reference:   uuid.NewString(),
	}
	if err := tx.CreateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func lockOperation(tx repositories.LedgerRepository, operationID uint) (*models.WalletOperation, error) {
	op, err := tx.GetOperationForUpdate(operationID)
	if err != nil {
		if errors.Is(err, repositories.ErrOperationNotFound) {
			return nil, apperrors.ErrOperationNotFound
		}
		return nil, err
	}
	return op, nil
}

// translate maps infrastructure failures onto the domain taxonomy; domain
// errors pass through unchanged.
func (s *service) translate(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrOperationTimeout
	}
	return err
}

func errorType(err error) string {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "internal"
}

// startOfDay returns midnight of the local calendar day containing t; the
// daily limit window runs from here.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
