package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"dhandhan-quiz-backend/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// WithdrawalLog implements ports.WithdrawalRepository on a Redis list,
// newest first.
type WithdrawalLog struct {
	client *goredis.Client
}

// NewWithdrawalLog creates a Redis-backed withdrawal request log.
func NewWithdrawalLog(client *goredis.Client) *WithdrawalLog {
	return &WithdrawalLog{client: client}
}

// Append prepends a request to the log.
func (l *WithdrawalLog) Append(ctx context.Context, req *domain.WithdrawalRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal withdrawal request: %w", err)
	}
	if err := l.client.LPush(ctx, keyWithdrawals, data).Err(); err != nil {
		return fmt.Errorf("redis withdrawal append: %w", err)
	}
	return nil
}

// Get returns nil, nil when the id is unknown.
func (l *WithdrawalLog) Get(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Update replaces the request with the same id.
func (l *WithdrawalLog) Update(ctx context.Context, req *domain.WithdrawalRequest) error {
	raws, err := l.client.LRange(ctx, keyWithdrawals, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("redis withdrawal scan: %w", err)
	}

	for i, raw := range raws {
		var entry domain.WithdrawalRequest
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return fmt.Errorf("unmarshal withdrawal request: %w", err)
		}
		if entry.ID != req.ID {
			continue
		}
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal withdrawal request: %w", err)
		}
		if err := l.client.LSet(ctx, keyWithdrawals, int64(i), data).Err(); err != nil {
			return fmt.Errorf("redis withdrawal update: %w", err)
		}
		return nil
	}
	return fmt.Errorf("withdrawal request %s not found", req.ID)
}

// All returns the full log, newest first.
func (l *WithdrawalLog) All(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	raws, err := l.client.LRange(ctx, keyWithdrawals, 0, -1).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis withdrawal scan: %w", err)
	}

	requests := make([]domain.WithdrawalRequest, 0, len(raws))
	for _, raw := range raws {
		var entry domain.WithdrawalRequest
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal withdrawal request: %w", err)
		}
		requests = append(requests, entry)
	}
	return requests, nil
}
