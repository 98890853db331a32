package ports

import (
	"context"

	"dhandhan-quiz-backend/internal/core/domain"
)

// AccountRepository is the persisted mapping from account key to account
// record. Every mutation replaces the full record; there are no partial
// updates (single local writer by design).
type AccountRepository interface {
	// Create stores a new account. Returns domain error data via (created=false)
	// when the key already exists; the existing record is left untouched.
	Create(ctx context.Context, account *domain.Account) (created bool, err error)
	// Get returns nil, nil when no account exists for the key.
	Get(ctx context.Context, key string) (*domain.Account, error)
	// Save replaces the whole account record.
	Save(ctx context.Context, account *domain.Account) error
	// All returns every registered account (small local store; full scans are fine).
	All(ctx context.Context) ([]domain.Account, error)
}

// DepositRepository is the newest-first deposit request log.
type DepositRepository interface {
	Append(ctx context.Context, req *domain.DepositRequest) error
	// Get returns nil, nil when the id is unknown.
	Get(ctx context.Context, id string) (*domain.DepositRequest, error)
	// Update replaces a request in place, matched by id.
	Update(ctx context.Context, req *domain.DepositRequest) error
	All(ctx context.Context) ([]domain.DepositRequest, error)
}

// WithdrawalRepository is the newest-first withdrawal request log.
type WithdrawalRepository interface {
	Append(ctx context.Context, req *domain.WithdrawalRequest) error
	Get(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	Update(ctx context.Context, req *domain.WithdrawalRequest) error
	All(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

// SeenQuestionStore records fingerprints of questions already served, so
// later batches can avoid repeats.
type SeenQuestionStore interface {
	// FilterNew returns the subset of fingerprints not seen before.
	FilterNew(ctx context.Context, fingerprints []string) ([]string, error)
	Add(ctx context.Context, fingerprints []string) error
}

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// HealthChecker verifies connectivity of an infrastructure dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
