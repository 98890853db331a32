package redis

import (
	"context"
	"testing"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(mobile string) *domain.Account {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Account{
		Mobile:    mobile,
		Name:      "Rahim",
		PinHash:   "hashed",
		Stats:     domain.DefaultStats(3),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewAccountStore(client)
	ctx := context.Background()

	// Get before create => nil, nil
	account, err := store.Get(ctx, "01712345678")
	assert.NoError(t, err)
	assert.Nil(t, account)

	created, err := store.Create(ctx, newTestAccount("01712345678"))
	require.NoError(t, err)
	assert.True(t, created)

	account, err = store.Get(ctx, "01712345678")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "Rahim", account.Name)
	assert.True(t, account.Stats.Balance.IsZero())
	assert.Equal(t, 3, account.Stats.MaxDailyGames)
}

func TestAccountStore_CreateDuplicate(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewAccountStore(client)
	ctx := context.Background()

	created, err := store.Create(ctx, newTestAccount("01712345678"))
	require.NoError(t, err)
	require.True(t, created)

	dup := newTestAccount("01712345678")
	dup.Name = "Karim"
	created, err = store.Create(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	// First record is untouched
	account, err := store.Get(ctx, "01712345678")
	require.NoError(t, err)
	assert.Equal(t, "Rahim", account.Name)
}

func TestAccountStore_SaveReplacesRecord(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewAccountStore(client)
	ctx := context.Background()

	acct := newTestAccount("01712345678")
	_, err := store.Create(ctx, acct)
	require.NoError(t, err)

	acct.Stats.TotalScore = 200
	acct.Stats.Balance = decimal.RequireFromString("3.30")
	require.NoError(t, store.Save(ctx, acct))

	got, err := store.Get(ctx, "01712345678")
	require.NoError(t, err)
	assert.Equal(t, 200, got.Stats.TotalScore)
	assert.True(t, got.Stats.Balance.Equal(decimal.RequireFromString("3.30")))
}

func TestAccountStore_All(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewAccountStore(client)
	ctx := context.Background()

	_, err := store.Create(ctx, newTestAccount("01712345678"))
	require.NoError(t, err)
	_, err = store.Create(ctx, newTestAccount("01898765432"))
	require.NoError(t, err)

	accounts, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	keys := []string{accounts[0].Mobile, accounts[1].Mobile}
	assert.ElementsMatch(t, []string{"01712345678", "01898765432"}, keys)
}
