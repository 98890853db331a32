package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"dhandhan-quiz-backend/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// AccountStore implements ports.AccountRepository on a single Redis hash:
// field = account key (mobile), value = full account record as JSON.
// Mutations always write the whole record back.
type AccountStore struct {
	client *goredis.Client
}

// NewAccountStore creates a Redis-backed account repository.
func NewAccountStore(client *goredis.Client) *AccountStore {
	return &AccountStore{client: client}
}

// Create stores a new account record. Returns created=false without touching
// the store when the key is already registered.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) (bool, error) {
	data, err := json.Marshal(account)
	if err != nil {
		return false, fmt.Errorf("marshal account: %w", err)
	}

	created, err := s.client.HSetNX(ctx, keyAccounts, account.Mobile, data).Result()
	if err != nil {
		return false, fmt.Errorf("redis account create: %w", err)
	}
	return created, nil
}

// Get returns nil, nil when no account exists for the key.
func (s *AccountStore) Get(ctx context.Context, key string) (*domain.Account, error) {
	data, err := s.client.HGet(ctx, keyAccounts, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis account get: %w", err)
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("unmarshal account %s: %w", key, err)
	}
	return &account, nil
}

// Save replaces the whole account record.
func (s *AccountStore) Save(ctx context.Context, account *domain.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	if err := s.client.HSet(ctx, keyAccounts, account.Mobile, data).Err(); err != nil {
		return fmt.Errorf("redis account save: %w", err)
	}
	return nil
}

// All returns every registered account.
func (s *AccountStore) All(ctx context.Context) ([]domain.Account, error) {
	entries, err := s.client.HGetAll(ctx, keyAccounts).Result()
	if err != nil {
		return nil, fmt.Errorf("redis account scan: %w", err)
	}

	accounts := make([]domain.Account, 0, len(entries))
	for key, raw := range entries {
		var account domain.Account
		if err := json.Unmarshal([]byte(raw), &account); err != nil {
			return nil, fmt.Errorf("unmarshal account %s: %w", key, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
