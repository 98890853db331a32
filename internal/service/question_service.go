package service

import (
	"context"
	"sync"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"

	"github.com/rs/zerolog"
)

// overRequest is how many extra questions are asked for per fetch, so the
// batch survives a few duplicates being filtered out.
const overRequest = 3

// prefetchTimeout bounds a background fetch detached from any request.
const prefetchTimeout = 45 * time.Second

// QuestionServiceImpl implements ports.QuestionService: one ready batch per
// account, de-duplicated against every question served before. A sequence
// number per account guards against a slow fetch overwriting a newer one.
type QuestionServiceImpl struct {
	provider  ports.QuestionProvider
	seen      ports.SeenQuestionStore
	batchSize int
	log       zerolog.Logger

	mu      sync.Mutex
	batches map[string][]domain.Question
	seq     map[string]uint64
}

// NewQuestionService creates a new question service.
func NewQuestionService(
	provider ports.QuestionProvider,
	seen ports.SeenQuestionStore,
	batchSize int,
	log zerolog.Logger,
) *QuestionServiceImpl {
	return &QuestionServiceImpl{
		provider:  provider,
		seen:      seen,
		batchSize: batchSize,
		log:       log,
		batches:   make(map[string][]domain.Question),
		seq:       make(map[string]uint64),
	}
}

// Batch returns the ready batch for the account, fetching synchronously when
// no prefetched batch is waiting.
func (s *QuestionServiceImpl) Batch(ctx context.Context, accountKey string) ([]domain.Question, error) {
	s.mu.Lock()
	if batch, ok := s.batches[accountKey]; ok && len(batch) > 0 {
		s.mu.Unlock()
		return batch, nil
	}
	s.seq[accountKey]++
	mySeq := s.seq[accountKey]
	s.mu.Unlock()

	batch := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[accountKey] == mySeq {
		s.batches[accountKey] = batch
	}
	return batch, nil
}

// Prefetch starts an asynchronous fetch of the next batch. A response that
// arrives after a newer fetch began is discarded.
func (s *QuestionServiceImpl) Prefetch(accountKey string) {
	s.mu.Lock()
	s.seq[accountKey]++
	mySeq := s.seq[accountKey]
	delete(s.batches, accountKey)
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
		defer cancel()

		batch := s.fetch(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.seq[accountKey] != mySeq {
			s.log.Debug().Str("account", accountKey).Msg("discarding stale question batch")
			return
		}
		s.batches[accountKey] = batch
	}()
}

// Consume marks the account's current batch as used.
func (s *QuestionServiceImpl) Consume(accountKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, accountKey)
}

// fetch pulls a fresh batch from the provider and filters out questions
// served before. Provider failure degrades to the built-in fallback batch;
// an all-duplicates reply yields an empty batch, which the session engine
// refuses to start on.
func (s *QuestionServiceImpl) fetch(ctx context.Context) []domain.Question {
	generated, err := s.provider.Generate(ctx, s.batchSize+overRequest)
	if err != nil {
		s.log.Warn().Err(err).Msg("question provider failed, using fallback batch")
		return fallbackQuestions()
	}

	fingerprints := make([]string, len(generated))
	for i, q := range generated {
		fingerprints[i] = q.ID
	}

	fresh, err := s.seen.FilterNew(ctx, fingerprints)
	if err != nil {
		// Dedup store down: serve the batch unfiltered rather than nothing.
		s.log.Warn().Err(err).Msg("seen-question store unavailable, skipping dedup")
		if len(generated) > s.batchSize {
			generated = generated[:s.batchSize]
		}
		return generated
	}

	freshSet := make(map[string]struct{}, len(fresh))
	for _, fp := range fresh {
		freshSet[fp] = struct{}{}
	}

	batch := make([]domain.Question, 0, s.batchSize)
	served := make([]string, 0, s.batchSize)
	for _, q := range generated {
		if _, ok := freshSet[q.ID]; !ok {
			continue
		}
		delete(freshSet, q.ID) // in-batch duplicates
		batch = append(batch, q)
		served = append(served, q.ID)
		if len(batch) >= s.batchSize {
			break
		}
	}

	if err := s.seen.Add(ctx, served); err != nil {
		s.log.Warn().Err(err).Msg("failed to record served question fingerprints")
	}

	return batch
}

// fallbackQuestions is the canned batch used when the provider is down, so
// the game stays playable offline.
func fallbackQuestions() []domain.Question {
	texts := []struct {
		text    string
		options []string
		correct int
	}{
		{
			"১৯৫২ সালের ভাষা আন্দোলনে প্রথম শহীদ রফিকের পূর্ণ নাম কী ছিল?",
			[]string{"রফিক উদ্দিন আহমেদ", "রফিকুল ইসলাম", "রফিক জব্বার", "আব্দুর রফিক"},
			0,
		},
		{
			"মানুষের ডিএনএ-তে (DNA) নাইট্রোজেন বেস 'অ্যাডিনিন' এর সাথে কোনটি যুক্ত থাকে?",
			[]string{"গুয়ানিন", "সাইটোসিন", "থাইমিন", "ইউরাসিল"},
			2,
		},
		{
			"মহাস্থানগড় কোন নদীর তীরে অবস্থিত?",
			[]string{"করতোয়া", "পদ্মা", "মেঘনা", "আত্রাই"},
			0,
		},
	}

	batch := make([]domain.Question, len(texts))
	for i, q := range texts {
		batch[i] = domain.Question{
			ID:           domain.Fingerprint(q.text),
			Text:         q.text,
			Options:      q.options,
			CorrectIndex: q.correct,
		}
	}
	return batch
}
