package service

import (
	"context"
	"sync"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"

	"github.com/shopspring/decimal"
)

// In-memory fakes shared by the service tests. They mirror the Redis store
// semantics: whole-record replacement, nil-nil misses, newest-first logs.

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	saveErr  error // when set, Save fails with it
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.Mobile]; exists {
		return false, nil
	}
	r.accounts[account.Mobile] = *account
	return true, nil
}

func (r *memAccountRepo) Get(_ context.Context, key string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[key]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (r *memAccountRepo) Save(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.accounts[account.Mobile] = *account
	return nil
}

func (r *memAccountRepo) All(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		all = append(all, account)
	}
	return all, nil
}

type memDepositRepo struct {
	mu       sync.Mutex
	requests []domain.DepositRequest
}

func (r *memDepositRepo) Append(_ context.Context, req *domain.DepositRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append([]domain.DepositRequest{*req}, r.requests...)
	return nil
}

func (r *memDepositRepo) Get(_ context.Context, id string) (*domain.DepositRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			req := r.requests[i]
			return &req, nil
		}
	}
	return nil, nil
}

func (r *memDepositRepo) Update(_ context.Context, req *domain.DepositRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			r.requests[i] = *req
			return nil
		}
	}
	return nil
}

func (r *memDepositRepo) All(_ context.Context) ([]domain.DepositRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.DepositRequest(nil), r.requests...), nil
}

type memWithdrawalRepo struct {
	mu       sync.Mutex
	requests []domain.WithdrawalRequest
}

func (r *memWithdrawalRepo) Append(_ context.Context, req *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append([]domain.WithdrawalRequest{*req}, r.requests...)
	return nil
}

func (r *memWithdrawalRepo) Get(_ context.Context, id string) (*domain.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			req := r.requests[i]
			return &req, nil
		}
	}
	return nil, nil
}

func (r *memWithdrawalRepo) Update(_ context.Context, req *domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			r.requests[i] = *req
			return nil
		}
	}
	return nil
}

func (r *memWithdrawalRepo) All(_ context.Context) ([]domain.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.WithdrawalRequest(nil), r.requests...), nil
}

type memSeenStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newMemSeenStore() *memSeenStore {
	return &memSeenStore{seen: make(map[string]struct{})}
}

func (s *memSeenStore) FilterNew(_ context.Context, fingerprints []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make([]string, 0, len(fingerprints))
	for _, fp := range fingerprints {
		if _, ok := s.seen[fp]; !ok {
			fresh = append(fresh, fp)
		}
	}
	return fresh, nil
}

func (s *memSeenStore) Add(_ context.Context, fingerprints []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fp := range fingerprints {
		s.seen[fp] = struct{}{}
	}
	return nil
}

// fakeNotifier records cues without blocking.
type fakeNotifier struct {
	mu       sync.Mutex
	cues     []domain.Cue
	finished []domain.SessionResult
	earned   []decimal.Decimal
}

func (n *fakeNotifier) Cue(_ string, cue domain.Cue) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cues = append(n.cues, cue)
}

func (n *fakeNotifier) SessionFinished(_ string, result domain.SessionResult, earned decimal.Decimal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.finished = append(n.finished, result)
	n.earned = append(n.earned, earned)
}

func (n *fakeNotifier) cueCount(cue domain.Cue) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, c := range n.cues {
		if c == cue {
			count++
		}
	}
	return count
}

// stubQuestionSvc serves a fixed batch and records prefetches.
type stubQuestionSvc struct {
	mu         sync.Mutex
	batch      []domain.Question
	prefetches int
	consumes   int
}

func (s *stubQuestionSvc) Batch(_ context.Context, _ string) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch, nil
}

func (s *stubQuestionSvc) Prefetch(_ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefetches++
}

func (s *stubQuestionSvc) Consume(_ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumes++
}

func (s *stubQuestionSvc) prefetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefetches
}

// testRules builds game rules with fast timings for engine tests.
func testRules() GameRules {
	return GameRules{
		QuestionsPerSession: 10,
		QuestionTime:        12 * time.Second,
		RevealDelay:         2 * time.Second,
		FinishDelay:         500 * time.Millisecond,
		TimeBonus:           10 * time.Second,
		FreeDailyGames:      3,
		PremiumDailyGames:   30,
		FreeEarnRate:        decimal.RequireFromString("0.33"),
		PremiumEarnRate:     decimal.RequireFromString("0.93"),
		PlanPrice:           decimal.RequireFromString("99"),
		SubscriptionDays:    30,
		DailyBonus:          decimal.RequireFromString("0.50"),
		MinWithdrawal:       decimal.RequireFromString("200"),
	}
}

// testQuestions builds a batch where option 0 is always correct.
func testQuestions(n int) []domain.Question {
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{
			ID:           domain.Fingerprint(string(rune('a' + i))),
			Text:         "প্রশ্ন",
			Options:      []string{"সঠিক", "ভুল ১", "ভুল ২", "ভুল ৩"},
			CorrectIndex: 0,
		}
	}
	return questions
}
