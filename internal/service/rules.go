package service

import (
	"fmt"
	"time"

	"dhandhan-quiz-backend/config"

	"github.com/shopspring/decimal"
)

// GameRules is config.GameConfig with the monetary strings parsed into exact
// decimals. Built once at startup; all economy services share it.
type GameRules struct {
	QuestionsPerSession int
	QuestionTime        time.Duration
	RevealDelay         time.Duration
	FinishDelay         time.Duration
	TimeBonus           time.Duration
	FreeDailyGames      int
	PremiumDailyGames   int
	FreeEarnRate        decimal.Decimal
	PremiumEarnRate     decimal.Decimal
	PlanPrice           decimal.Decimal
	SubscriptionDays    int
	DailyBonus          decimal.Decimal
	MinWithdrawal       decimal.Decimal
}

// NewGameRules parses the game config. Fails fast on malformed amounts.
func NewGameRules(cfg config.GameConfig) (GameRules, error) {
	rules := GameRules{
		QuestionsPerSession: cfg.QuestionsPerSession,
		QuestionTime:        cfg.QuestionTime,
		RevealDelay:         cfg.RevealDelay,
		FinishDelay:         cfg.FinishDelay,
		TimeBonus:           cfg.TimeBonus,
		FreeDailyGames:      cfg.FreeDailyGames,
		PremiumDailyGames:   cfg.PremiumDailyGames,
		SubscriptionDays:    cfg.SubscriptionDays,
	}

	for _, field := range []struct {
		name  string
		raw   string
		value *decimal.Decimal
	}{
		{"free_earn_rate", cfg.FreeEarnRate, &rules.FreeEarnRate},
		{"premium_earn_rate", cfg.PremiumEarnRate, &rules.PremiumEarnRate},
		{"plan_price", cfg.PlanPrice, &rules.PlanPrice},
		{"daily_bonus", cfg.DailyBonus, &rules.DailyBonus},
		{"min_withdrawal", cfg.MinWithdrawal, &rules.MinWithdrawal},
	} {
		parsed, err := decimal.NewFromString(field.raw)
		if err != nil {
			return GameRules{}, fmt.Errorf("parsing game.%s %q: %w", field.name, field.raw, err)
		}
		*field.value = parsed
	}

	return rules, nil
}

// EarnRate returns the per-correct-answer payout for the given tier.
func (r GameRules) EarnRate(premium bool) decimal.Decimal {
	if premium {
		return r.PremiumEarnRate
	}
	return r.FreeEarnRate
}
