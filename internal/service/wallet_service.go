package service

import (
	"context"
	"fmt"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService: profile reads, the daily
// login bonus and the sound preference.
type WalletServiceImpl struct {
	accountRepo ports.AccountRepository
	subSvc      ports.SubscriptionService
	rules       GameRules
	now         func() time.Time
	log         zerolog.Logger
}

// NewWalletService creates a new wallet service.
func NewWalletService(
	accountRepo ports.AccountRepository,
	subSvc ports.SubscriptionService,
	rules GameRules,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		accountRepo: accountRepo,
		subSvc:      subSvc,
		rules:       rules,
		now:         time.Now,
		log:         log,
	}
}

// Profile returns the account. Loading a profile is a subscription
// checkpoint: a lapsed premium is downgraded before the account is returned.
func (s *WalletServiceImpl) Profile(ctx context.Context, accountKey string) (*domain.Account, error) {
	account, err := s.load(ctx, accountKey)
	if err != nil {
		return nil, err
	}

	account, _, err = s.subSvc.CheckAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ClaimDailyBonus credits the daily login bonus, guarded by calendar day.
func (s *WalletServiceImpl) ClaimDailyBonus(ctx context.Context, accountKey string) (*domain.Account, error) {
	account, err := s.load(ctx, accountKey)
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	if !account.Stats.BonusAvailable(today) {
		return nil, apperror.ErrBonusAlreadyClaimed()
	}

	account.Stats.Balance = account.Stats.Balance.Add(s.rules.DailyBonus)
	account.Stats.LastBonusDate = &today
	account.UpdatedAt = s.now().UTC()

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, apperror.ErrStoreError(fmt.Errorf("persist bonus claim: %w", err))
	}

	s.log.Info().
		Str("account", accountKey).
		Str("bonus", s.rules.DailyBonus.String()).
		Msg("daily bonus claimed")
	return account, nil
}

// SetSound toggles the account's sound preference.
func (s *WalletServiceImpl) SetSound(ctx context.Context, accountKey string, enabled bool) (*domain.Account, error) {
	account, err := s.load(ctx, accountKey)
	if err != nil {
		return nil, err
	}

	account.Stats.SoundEnabled = enabled
	account.UpdatedAt = s.now().UTC()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, apperror.ErrStoreError(fmt.Errorf("persist sound preference: %w", err))
	}
	return account, nil
}

func (s *WalletServiceImpl) load(ctx context.Context, accountKey string) (*domain.Account, error) {
	account, err := s.accountRepo.Get(ctx, accountKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	return account, nil
}
