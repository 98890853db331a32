package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

var counterpartyPattern = regexp.MustCompile(`^[0-9]{11}$`)

const minTrxIDLength = 5

// WorkflowServiceImpl implements ports.WorkflowService: the deposit and
// withdrawal request lifecycle. Requests are append-only; an admin decision
// flips status once, and only a withdrawal rejection touches the ledger
// again (the refund).
type WorkflowServiceImpl struct {
	accountRepo    ports.AccountRepository
	depositRepo    ports.DepositRepository
	withdrawalRepo ports.WithdrawalRepository
	auditSvc       ports.AuditService
	rules          GameRules
	now            func() time.Time
	log            zerolog.Logger
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(
	accountRepo ports.AccountRepository,
	depositRepo ports.DepositRepository,
	withdrawalRepo ports.WithdrawalRepository,
	auditSvc ports.AuditService,
	rules GameRules,
	log zerolog.Logger,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		accountRepo:    accountRepo,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		auditSvc:       auditSvc,
		rules:          rules,
		now:            time.Now,
		log:            log,
	}
}

// CreateDeposit appends a PENDING premium-purchase claim. The amount is
// fixed by the plan price; the ledger is untouched until approval.
func (s *WorkflowServiceImpl) CreateDeposit(ctx context.Context, req ports.CreateDepositRequest) (*domain.DepositRequest, error) {
	account, err := s.accountRepo.Get(ctx, req.AccountKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	if !counterpartyPattern.MatchString(req.SenderNumber) {
		return nil, apperror.Validation("sender number must be exactly 11 digits")
	}
	if len(req.TrxID) < minTrxIDLength {
		return nil, apperror.Validation("transaction id is too short")
	}
	if req.Method == "" {
		return nil, apperror.Validation("payment method is required")
	}

	now := s.now().UTC()
	deposit := &domain.DepositRequest{
		ID:           domain.NewRequestID(now),
		AccountKey:   account.Mobile,
		AccountName:  account.Name,
		Method:       req.Method,
		SenderNumber: req.SenderNumber,
		TrxID:        req.TrxID,
		Amount:       s.rules.PlanPrice,
		CreatedAt:    now,
		Status:       domain.RequestStatusPending,
	}

	if err := s.depositRepo.Append(ctx, deposit); err != nil {
		return nil, apperror.ErrStoreError(fmt.Errorf("append deposit request: %w", err))
	}

	s.audit(ctx, account.Mobile, domain.AuditActionDepositCreate, "deposit_request", deposit.ID, map[string]any{
		"method": deposit.Method,
		"amount": deposit.Amount.String(),
	})
	return deposit, nil
}

// ApproveDeposit marks a PENDING deposit APPROVED and grants the account a
// fresh premium period. Acting on a non-PENDING request is a no-op.
func (s *WorkflowServiceImpl) ApproveDeposit(ctx context.Context, id string) error {
	deposit, err := s.depositRepo.Get(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load deposit request: %w", err))
	}
	if deposit == nil {
		return apperror.ErrRequestNotFound()
	}
	if !deposit.IsPending() {
		return nil
	}

	account, err := s.accountRepo.Get(ctx, deposit.AccountKey)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}

	deposit.Status = domain.RequestStatusApproved
	if err := s.depositRepo.Update(ctx, deposit); err != nil {
		return apperror.ErrStoreError(fmt.Errorf("update deposit request: %w", err))
	}

	expiry := s.now().UTC().AddDate(0, 0, s.rules.SubscriptionDays)
	account.Stats.IsPremium = true
	account.Stats.MaxDailyGames = s.rules.PremiumDailyGames
	account.Stats.SubscriptionExpiry = &expiry
	account.UpdatedAt = s.now().UTC()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return apperror.ErrStoreError(fmt.Errorf("grant premium: %w", err))
	}

	s.log.Info().
		Str("account", account.Mobile).
		Str("request", id).
		Time("expiry", expiry).
		Msg("deposit approved, premium granted")
	s.audit(ctx, "admin", domain.AuditActionDepositApprove, "deposit_request", id, map[string]any{
		"account": account.Mobile,
	})
	return nil
}

// RejectDeposit marks a PENDING deposit REJECTED. No ledger effect: the
// claimed payment was never credited by this system.
func (s *WorkflowServiceImpl) RejectDeposit(ctx context.Context, id string) error {
	deposit, err := s.depositRepo.Get(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load deposit request: %w", err))
	}
	if deposit == nil {
		return apperror.ErrRequestNotFound()
	}
	if !deposit.IsPending() {
		return nil
	}

	deposit.Status = domain.RequestStatusRejected
	if err := s.depositRepo.Update(ctx, deposit); err != nil {
		return apperror.ErrStoreError(fmt.Errorf("update deposit request: %w", err))
	}

	s.audit(ctx, "admin", domain.AuditActionDepositReject, "deposit_request", id, nil)
	return nil
}

// CreateWithdrawal debits the requested amount immediately and appends a
// PENDING payout claim. The immediate debit prevents double-spending while
// the request waits for review.
func (s *WorkflowServiceImpl) CreateWithdrawal(ctx context.Context, req ports.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	account, err := s.accountRepo.Get(ctx, req.AccountKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	if req.Amount.LessThan(s.rules.MinWithdrawal) {
		return nil, apperror.ErrBelowMinimumWithdrawal()
	}
	if req.Amount.GreaterThan(account.Stats.Balance) {
		return nil, apperror.ErrInsufficientBalance()
	}
	if !counterpartyPattern.MatchString(req.ReceiverNumber) {
		return nil, apperror.Validation("receiver number must be exactly 11 digits")
	}
	if req.Method == "" {
		return nil, apperror.Validation("payment method is required")
	}

	account.Stats.Balance = account.Stats.Balance.Sub(req.Amount)
	account.UpdatedAt = s.now().UTC()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, apperror.ErrStoreError(fmt.Errorf("debit balance: %w", err))
	}

	now := s.now().UTC()
	withdrawal := &domain.WithdrawalRequest{
		ID:             domain.NewRequestID(now),
		AccountKey:     account.Mobile,
		AccountName:    account.Name,
		Method:         req.Method,
		ReceiverNumber: req.ReceiverNumber,
		Amount:         req.Amount,
		CreatedAt:      now,
		Status:         domain.RequestStatusPending,
	}

	if err := s.withdrawalRepo.Append(ctx, withdrawal); err != nil {
		// The debit has landed but the request has not. Refund so the
		// balance is not silently lost.
		account.Stats.Balance = account.Stats.Balance.Add(req.Amount)
		if saveErr := s.accountRepo.Save(ctx, account); saveErr != nil {
			s.log.Error().Err(saveErr).
				Str("account", account.Mobile).
				Str("amount", req.Amount.String()).
				Msg("refund after failed withdrawal append also failed")
		}
		return nil, apperror.ErrStoreError(fmt.Errorf("append withdrawal request: %w", err))
	}

	s.audit(ctx, account.Mobile, domain.AuditActionWithdrawalCreate, "withdrawal_request", withdrawal.ID, map[string]any{
		"amount": withdrawal.Amount.String(),
		"method": withdrawal.Method,
	})
	return withdrawal, nil
}

// ApproveWithdrawal marks a PENDING withdrawal APPROVED. Funds are considered
// paid out externally; the debit already happened at creation.
func (s *WorkflowServiceImpl) ApproveWithdrawal(ctx context.Context, id string) error {
	withdrawal, err := s.withdrawalRepo.Get(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load withdrawal request: %w", err))
	}
	if withdrawal == nil {
		return apperror.ErrRequestNotFound()
	}
	if !withdrawal.IsPending() {
		return nil
	}

	withdrawal.Status = domain.RequestStatusApproved
	if err := s.withdrawalRepo.Update(ctx, withdrawal); err != nil {
		return apperror.ErrStoreError(fmt.Errorf("update withdrawal request: %w", err))
	}

	s.audit(ctx, "admin", domain.AuditActionWithdrawalApprove, "withdrawal_request", id, nil)
	return nil
}

// RejectWithdrawal marks a PENDING withdrawal REJECTED and refunds the full
// amount into the account's balance.
func (s *WorkflowServiceImpl) RejectWithdrawal(ctx context.Context, id string) error {
	withdrawal, err := s.withdrawalRepo.Get(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load withdrawal request: %w", err))
	}
	if withdrawal == nil {
		return apperror.ErrRequestNotFound()
	}
	if !withdrawal.IsPending() {
		return nil
	}

	withdrawal.Status = domain.RequestStatusRejected
	if err := s.withdrawalRepo.Update(ctx, withdrawal); err != nil {
		return apperror.ErrStoreError(fmt.Errorf("update withdrawal request: %w", err))
	}

	account, err := s.accountRepo.Get(ctx, withdrawal.AccountKey)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		// Request references an account that no longer exists; nothing
		// to refund into.
		s.log.Warn().Str("request", id).Str("account", withdrawal.AccountKey).Msg("refund target account missing")
		return nil
	}

	account.Stats.Balance = account.Stats.Balance.Add(withdrawal.Amount)
	account.UpdatedAt = s.now().UTC()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		// Put the request back to PENDING so the rejection can be retried;
		// leaving it REJECTED here would swallow the player's money.
		withdrawal.Status = domain.RequestStatusPending
		if revertErr := s.withdrawalRepo.Update(ctx, withdrawal); revertErr != nil {
			s.log.Error().Err(revertErr).Str("request", id).Msg("failed to revert withdrawal status after refund failure")
		}
		return apperror.ErrStoreError(fmt.Errorf("refund balance: %w", err))
	}

	s.log.Info().
		Str("account", account.Mobile).
		Str("request", id).
		Str("amount", withdrawal.Amount.String()).
		Msg("withdrawal rejected, amount refunded")
	s.audit(ctx, "admin", domain.AuditActionWithdrawalReject, "withdrawal_request", id, map[string]any{
		"refunded": withdrawal.Amount.String(),
	})
	return nil
}

// ListDeposits returns the deposit log, newest first.
func (s *WorkflowServiceImpl) ListDeposits(ctx context.Context) ([]domain.DepositRequest, error) {
	deposits, err := s.depositRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list deposits: %w", err))
	}
	return deposits, nil
}

// ListWithdrawals returns the withdrawal log, newest first.
func (s *WorkflowServiceImpl) ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	withdrawals, err := s.withdrawalRepo.All(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return withdrawals, nil
}

func (s *WorkflowServiceImpl) audit(ctx context.Context, actor string, action domain.AuditAction, resourceType, resourceID string, details map[string]any) {
	if s.auditSvc == nil {
		return
	}
	var raw []byte
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	s.auditSvc.Log(ctx, domain.NewAuditLog(actor, action, resourceType, resourceID, raw, ""))
}
