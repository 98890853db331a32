package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// SeenQuestions implements ports.SeenQuestionStore on a Redis set of
// question fingerprints.
type SeenQuestions struct {
	client *goredis.Client
}

// NewSeenQuestions creates a Redis-backed fingerprint set.
func NewSeenQuestions(client *goredis.Client) *SeenQuestions {
	return &SeenQuestions{client: client}
}

// FilterNew returns the subset of fingerprints not yet in the set,
// preserving input order.
func (s *SeenQuestions) FilterNew(ctx context.Context, fingerprints []string) ([]string, error) {
	if len(fingerprints) == 0 {
		return nil, nil
	}

	members := make([]interface{}, len(fingerprints))
	for i, fp := range fingerprints {
		members[i] = fp
	}

	seen, err := s.client.SMIsMember(ctx, keySeenQuestions, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis fingerprint check: %w", err)
	}

	fresh := make([]string, 0, len(fingerprints))
	for i, fp := range fingerprints {
		if !seen[i] {
			fresh = append(fresh, fp)
		}
	}
	return fresh, nil
}

// Add records fingerprints as seen.
func (s *SeenQuestions) Add(ctx context.Context, fingerprints []string) error {
	if len(fingerprints) == 0 {
		return nil
	}

	members := make([]interface{}, len(fingerprints))
	for i, fp := range fingerprints {
		members[i] = fp
	}
	if err := s.client.SAdd(ctx, keySeenQuestions, members...).Err(); err != nil {
		return fmt.Errorf("redis fingerprint add: %w", err)
	}
	return nil
}
