package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"dhandhan-quiz-backend/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DepositLog implements ports.DepositRepository on a Redis list, newest first.
// Status changes rewrite the matching element in place; entries are never
// removed.
type DepositLog struct {
	client *goredis.Client
}

// NewDepositLog creates a Redis-backed deposit request log.
func NewDepositLog(client *goredis.Client) *DepositLog {
	return &DepositLog{client: client}
}

// Append prepends a request to the log.
func (l *DepositLog) Append(ctx context.Context, req *domain.DepositRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal deposit request: %w", err)
	}
	if err := l.client.LPush(ctx, keyDeposits, data).Err(); err != nil {
		return fmt.Errorf("redis deposit append: %w", err)
	}
	return nil
}

// Get returns nil, nil when the id is unknown.
func (l *DepositLog) Get(ctx context.Context, id string) (*domain.DepositRequest, error) {
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
func (l *DepositLog) Update(ctx context.Context, req *domain.DepositRequest) error {
	raws, err := l.client.LRange(ctx, keyDeposits, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("redis deposit scan: %w", err)
	}

	for i, raw := range raws {
		var entry domain.DepositRequest
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return fmt.Errorf("unmarshal deposit request: %w", err)
		}
		if entry.ID != req.ID {
			continue
		}
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal deposit request: %w", err)
		}
		if err := l.client.LSet(ctx, keyDeposits, int64(i), data).Err(); err != nil {
			return fmt.Errorf("redis deposit update: %w", err)
		}
		return nil
	}
	return fmt.Errorf("deposit request %s not found", req.ID)
}

// All returns the full log, newest first.
func (l *DepositLog) All(ctx context.Context) ([]domain.DepositRequest, error) {
	raws, err := l.client.LRange(ctx, keyDeposits, 0, -1).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis deposit scan: %w", err)
	}

	requests := make([]domain.DepositRequest, 0, len(raws))
	for _, raw := range raws {
		var entry domain.DepositRequest
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal deposit request: %w", err)
		}
		requests = append(requests, entry)
	}
	return requests, nil
}
