package service

import (
	"context"
	"fmt"

	"dhandhan-quiz-backend/internal/core/ports"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// ResetScheduler resets every account's games-played-today counter at local
// midnight, restoring the daily game allowance.
type ResetScheduler struct {
	accountRepo ports.AccountRepository
	sched       gocron.Scheduler
	log         zerolog.Logger
}

// NewResetScheduler creates the scheduler; Start must be called to arm it.
func NewResetScheduler(accountRepo ports.AccountRepository, log zerolog.Logger) (*ResetScheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	return &ResetScheduler{
		accountRepo: accountRepo,
		sched:       sched,
		log:         log,
	}, nil
}

// Start arms the midnight sweep.
func (r *ResetScheduler) Start() error {
	_, err := r.sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(r.ResetDailyCounters),
	)
	if err != nil {
		return fmt.Errorf("scheduling daily reset: %w", err)
	}
	r.sched.Start()
	r.log.Info().Msg("daily counter reset scheduled for midnight")
	return nil
}

// Stop shuts the scheduler down.
func (r *ResetScheduler) Stop() {
	if err := r.sched.Shutdown(); err != nil {
		r.log.Warn().Err(err).Msg("scheduler shutdown failed")
	}
}

// ResetDailyCounters zeroes gamesPlayedToday on every account. Exported so
// it can be invoked directly and from the scheduled job.
func (r *ResetScheduler) ResetDailyCounters() {
	ctx := context.Background()

	accounts, err := r.accountRepo.All(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("daily reset: scanning accounts failed")
		return
	}

	reset := 0
	for i := range accounts {
		if accounts[i].Stats.GamesPlayedToday == 0 {
			continue
		}
		accounts[i].Stats.GamesPlayedToday = 0
		if err := r.accountRepo.Save(ctx, &accounts[i]); err != nil {
			r.log.Error().Err(err).Str("account", accounts[i].Mobile).Msg("daily reset: save failed")
			continue
		}
		reset++
	}

	r.log.Info().Int("accounts", reset).Msg("daily game counters reset")
}
