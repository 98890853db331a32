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

// SubscriptionServiceImpl implements ports.SubscriptionService. It owns the
// premium-expiry rule: a premium account whose expiry instant is strictly in
// the past is downgraded to the free tier. Expiry exactly at the current
// instant still counts as premium.
type SubscriptionServiceImpl struct {
	accountRepo    ports.AccountRepository
	auditSvc       ports.AuditService
	freeDailyGames int
	now            func() time.Time
	log            zerolog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	accountRepo ports.AccountRepository,
	auditSvc ports.AuditService,
	freeDailyGames int,
	log zerolog.Logger,
) *SubscriptionServiceImpl {
	return &SubscriptionServiceImpl{
		accountRepo:    accountRepo,
		auditSvc:       auditSvc,
		freeDailyGames: freeDailyGames,
		now:            time.Now,
		log:            log,
	}
}

// Expired reports whether a premium subscription has lapsed at instant now.
func Expired(stats domain.WalletStats, now time.Time) bool {
	return stats.IsPremium &&
		stats.SubscriptionExpiry != nil &&
		now.After(*stats.SubscriptionExpiry)
}

// CheckAccount downgrades a lapsed premium account and persists the change.
// Returns the (possibly updated) account and whether a downgrade happened.
func (s *SubscriptionServiceImpl) CheckAccount(ctx context.Context, account *domain.Account) (*domain.Account, bool, error) {
	if !Expired(account.Stats, s.now()) {
		return account, false, nil
	}

	account.Stats.IsPremium = false
	account.Stats.SubscriptionExpiry = nil
	account.Stats.MaxDailyGames = s.freeDailyGames
	account.UpdatedAt = s.now()

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("persist downgrade: %w", err))
	}

	s.log.Info().
		Str("account", account.Mobile).
		Msg("premium subscription expired, account downgraded")

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, domain.NewAuditLog(
			account.Mobile, domain.AuditActionSubscriptionExpiry, "account", account.Mobile, nil, "",
		))
	}

	return account, true, nil
}
