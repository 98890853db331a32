package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SettlementServiceImpl implements ports.SettlementService: it folds one
// finished session's {score, correctCount} into the account's persisted
// stats. The caller guarantees a session settles at most once.
type SettlementServiceImpl struct {
	accountRepo ports.AccountRepository
	questionSvc ports.QuestionService
	auditSvc    ports.AuditService
	rules       GameRules
	log         zerolog.Logger
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(
	accountRepo ports.AccountRepository,
	questionSvc ports.QuestionService,
	auditSvc ports.AuditService,
	rules GameRules,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		accountRepo: accountRepo,
		questionSvc: questionSvc,
		auditSvc:    auditSvc,
		rules:       rules,
		log:         log,
	}
}

// ApplySettlement is the pure settlement rule: numeric update first, then
// achievement evaluation against the updated stats. The session's correct
// count doubles as the streak signal for the sharp-shooter unlock.
func ApplySettlement(stats domain.WalletStats, result domain.SessionResult, rules GameRules) (domain.WalletStats, decimal.Decimal) {
	earned := rules.EarnRate(stats.IsPremium).Mul(decimal.NewFromInt(int64(result.CorrectCount)))

	stats.TotalScore += result.Score
	stats.Balance = stats.Balance.Add(earned)
	stats.GamesPlayedToday++
	stats.CompletedQuestions += rules.QuestionsPerSession
	streakSignal := 0
	if result.Score > 0 {
		streakSignal = result.CorrectCount
	}
	if streakSignal > stats.HighestStreak {
		stats.HighestStreak = streakSignal
	}

	if stats.CompletedQuestions > 0 {
		stats.Unlock(domain.AchievementFirstGame)
	}
	if result.CorrectCount >= 10 {
		stats.Unlock(domain.AchievementSharpShooter)
	}
	if stats.Balance.GreaterThanOrEqual(decimal.NewFromInt(50)) {
		stats.Unlock(domain.AchievementWealthy)
	}

	return stats, earned
}

// Settle applies a session result to the account and persists it whole.
// When the daily limit is not yet reached, the next question batch is
// prefetched so the following session starts without waiting.
func (s *SettlementServiceImpl) Settle(ctx context.Context, accountKey string, result domain.SessionResult) (*ports.Settlement, error) {
	account, err := s.accountRepo.Get(ctx, accountKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	stats, earned := ApplySettlement(account.Stats, result, s.rules)
	account.Stats = stats
	account.UpdatedAt = time.Now().UTC()

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, apperror.ErrStoreError(fmt.Errorf("persist settlement: %w", err))
	}

	limitReached := !account.Stats.CanStartSession()
	if !limitReached && s.questionSvc != nil {
		s.questionSvc.Prefetch(accountKey)
	}

	s.log.Info().
		Str("account", accountKey).
		Int("score", result.Score).
		Int("correct", result.CorrectCount).
		Str("earned", earned.String()).
		Bool("daily_limit_reached", limitReached).
		Msg("session settled")

	if s.auditSvc != nil {
		details, _ := json.Marshal(map[string]any{
			"score":   result.Score,
			"correct": result.CorrectCount,
			"earned":  earned.String(),
		})
		s.auditSvc.Log(ctx, domain.NewAuditLog(
			accountKey, domain.AuditActionSettlement, "session", accountKey, details, "",
		))
	}

	return &ports.Settlement{
		Earned:            earned,
		Stats:             account.Stats,
		DailyLimitReached: limitReached,
	}, nil
}
