package service

import (
	"context"
	"testing"

	"dhandhan-quiz-backend/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetScheduler_ResetDailyCounters(t *testing.T) {
	repo := newMemAccountRepo()
	for _, f := range []struct {
		mobile string
		played int
	}{
		{"01711111111", 3},
		{"01722222222", 0},
		{"01733333333", 12},
	} {
		account := &domain.Account{Mobile: f.mobile, Name: "Player", Stats: domain.DefaultStats(3)}
		account.Stats.GamesPlayedToday = f.played
		created, err := repo.Create(context.Background(), account)
		require.NoError(t, err)
		require.True(t, created)
	}

	scheduler, err := NewResetScheduler(repo, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(scheduler.Stop)

	scheduler.ResetDailyCounters()

	accounts, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	for _, account := range accounts {
		assert.Zero(t, account.Stats.GamesPlayedToday, account.Mobile)
	}
}
