package service

import (
	"context"
	"fmt"
	"sync"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

// GameServiceImpl implements ports.GameService. It owns the map of live
// session engines, at most one per account, and wires a finished engine
// into settlement.
type GameServiceImpl struct {
	accountRepo   ports.AccountRepository
	questionSvc   ports.QuestionService
	settlementSvc ports.SettlementService
	subSvc        ports.SubscriptionService
	notifier      ports.CueNotifier
	rules         GameRules
	timing        sessionTiming
	log           zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*SessionEngine
}

// NewGameService creates a new game service.
func NewGameService(
	accountRepo ports.AccountRepository,
	questionSvc ports.QuestionService,
	settlementSvc ports.SettlementService,
	subSvc ports.SubscriptionService,
	notifier ports.CueNotifier,
	rules GameRules,
	log zerolog.Logger,
) *GameServiceImpl {
	return &GameServiceImpl{
		accountRepo:   accountRepo,
		questionSvc:   questionSvc,
		settlementSvc: settlementSvc,
		subSvc:        subSvc,
		notifier:      notifier,
		rules:         rules,
		timing:        timingFromRules(rules),
		log:           log,
		sessions:      make(map[string]*SessionEngine),
	}
}

// Start begins a new session for the account. The daily limit is enforced
// here and only here; an empty question batch refuses the session without
// producing a settlement.
func (s *GameServiceImpl) Start(ctx context.Context, accountKey string) (*ports.SessionView, error) {
	account, err := s.accountRepo.Get(ctx, accountKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	// Account load doubles as a subscription checkpoint.
	account, _, err = s.subSvc.CheckAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	if !account.Stats.CanStartSession() {
		return nil, apperror.ErrDailyLimitReached()
	}

	s.mu.Lock()
	if _, active := s.sessions[accountKey]; active {
		s.mu.Unlock()
		return nil, apperror.ErrSessionAlreadyActive()
	}
	s.mu.Unlock()

	questions, err := s.questionSvc.Batch(ctx, accountKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch question batch: %w", err))
	}
	if len(questions) == 0 {
		return nil, apperror.ErrNoQuestionsAvailable()
	}
	s.questionSvc.Consume(accountKey)

	engine := newSessionEngine(accountKey, questions, s.timing, s.notifier, func(result domain.SessionResult) {
		s.settle(accountKey, result)
	})

	s.mu.Lock()
	if _, active := s.sessions[accountKey]; active {
		// Lost the race to a concurrent start.
		s.mu.Unlock()
		engine.Close()
		return nil, apperror.ErrSessionAlreadyActive()
	}
	s.sessions[accountKey] = engine
	s.mu.Unlock()

	s.log.Info().
		Str("account", accountKey).
		Int("questions", len(questions)).
		Msg("session started")

	return engine.View(), nil
}

// Answer submits the player's option choice for the current question.
func (s *GameServiceImpl) Answer(ctx context.Context, accountKey string, option int) (*ports.SessionView, error) {
	engine, err := s.engine(accountKey)
	if err != nil {
		return nil, err
	}
	return engine.Answer(option), nil
}

// UseLifeline applies a lifeline to the running session.
func (s *GameServiceImpl) UseLifeline(ctx context.Context, accountKey string, kind domain.LifelineKind) (*ports.SessionView, error) {
	engine, err := s.engine(accountKey)
	if err != nil {
		return nil, err
	}
	return engine.UseLifeline(kind), nil
}

// ReportQuestion flags the current question as erroneous.
func (s *GameServiceImpl) ReportQuestion(ctx context.Context, accountKey string) (*ports.SessionView, error) {
	engine, err := s.engine(accountKey)
	if err != nil {
		return nil, err
	}
	return engine.Report(), nil
}

// State returns the current session snapshot.
func (s *GameServiceImpl) State(ctx context.Context, accountKey string) (*ports.SessionView, error) {
	engine, err := s.engine(accountKey)
	if err != nil {
		return nil, err
	}
	return engine.View(), nil
}

// Exit abandons the running session. No settlement is produced.
func (s *GameServiceImpl) Exit(ctx context.Context, accountKey string) error {
	s.mu.Lock()
	engine, ok := s.sessions[accountKey]
	if ok {
		delete(s.sessions, accountKey)
	}
	s.mu.Unlock()

	if !ok {
		return apperror.ErrNoActiveSession()
	}
	engine.Close()
	s.log.Info().Str("account", accountKey).Msg("session exited")
	return nil
}

// settle runs when an engine finishes. It detaches from any request context:
// the session outlives the HTTP call that last touched it.
func (s *GameServiceImpl) settle(accountKey string, result domain.SessionResult) {
	// The slot stays occupied until the settlement is persisted; freeing it
	// first would let a new Start read a stale gamesPlayedToday counter.
	settlement, err := s.settlementSvc.Settle(context.Background(), accountKey, result)

	s.mu.Lock()
	engine, ok := s.sessions[accountKey]
	if ok {
		delete(s.sessions, accountKey)
	}
	s.mu.Unlock()
	if ok {
		engine.Close()
	}

	if err != nil {
		s.log.Error().Err(err).Str("account", accountKey).Msg("settlement failed")
		return
	}

	s.notifier.SessionFinished(accountKey, result, settlement.Earned)
}

func (s *GameServiceImpl) engine(accountKey string) (*SessionEngine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine, ok := s.sessions[accountKey]
	if !ok {
		return nil, apperror.ErrNoActiveSession()
	}
	return engine, nil
}
