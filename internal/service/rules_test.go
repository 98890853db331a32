package service

import (
	"testing"
	"time"

	"dhandhan-quiz-backend/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameConfig() config.GameConfig {
	return config.GameConfig{
		QuestionsPerSession: 10,
		QuestionTime:        12 * time.Second,
		RevealDelay:         2 * time.Second,
		FinishDelay:         500 * time.Millisecond,
		TimeBonus:           10 * time.Second,
		FreeDailyGames:      3,
		PremiumDailyGames:   30,
		FreeEarnRate:        "0.33",
		PremiumEarnRate:     "0.93",
		PlanPrice:           "99",
		SubscriptionDays:    30,
		DailyBonus:          "0.50",
		MinWithdrawal:       "200",
	}
}

func TestNewGameRules(t *testing.T) {
	rules, err := NewGameRules(gameConfig())
	require.NoError(t, err)

	assert.Equal(t, 10, rules.QuestionsPerSession)
	assert.Equal(t, 12*time.Second, rules.QuestionTime)
	assert.True(t, rules.PlanPrice.Equal(decimal.RequireFromString("99")))
	assert.True(t, rules.MinWithdrawal.Equal(decimal.RequireFromString("200")))
	assert.True(t, rules.EarnRate(false).Equal(decimal.RequireFromString("0.33")))
	assert.True(t, rules.EarnRate(true).Equal(decimal.RequireFromString("0.93")))
}

func TestNewGameRules_MalformedAmount(t *testing.T) {
	cfg := gameConfig()
	cfg.DailyBonus = "half a taka"

	_, err := NewGameRules(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.daily_bonus")
}
