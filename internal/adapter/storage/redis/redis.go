package redis

import (
	"context"
	"fmt"

	"dhandhan-quiz-backend/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Storage keys. The whole ledger lives in a handful of flat keys: an account
// hash, two request logs and a fingerprint set.
const (
	keyAccounts      = "accounts"
	keyDeposits      = "deposit_requests"
	keyWithdrawals   = "withdrawal_requests"
	keySeenQuestions = "seen_question_fingerprints"
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("Redis connection established")

	return client, nil
}
