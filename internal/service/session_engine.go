package service

import (
	"math/rand"
	"sync"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
)

// sessionTiming is the engine clock: tick interval, per-question budget in
// ticks, and the two one-shot delays. Production ticks are one second, so
// ticks read as seconds everywhere a view is built.
type sessionTiming struct {
	tickInterval  time.Duration
	questionTicks int
	bonusTicks    int
	revealDelay   time.Duration
	finishDelay   time.Duration
}

func timingFromRules(rules GameRules) sessionTiming {
	return sessionTiming{
		tickInterval:  time.Second,
		questionTicks: int(rules.QuestionTime / time.Second),
		bonusTicks:    int(rules.TimeBonus / time.Second),
		revealDelay:   rules.RevealDelay,
		finishDelay:   rules.FinishDelay,
	}
}

// Scoring constants.
const (
	pointsPerQuestion = 10
	streakBonusStep   = 5
	wrongPenalty      = 5
)

// SessionEngine runs one quiz attempt: timer, scoring, streak, lifelines.
// It is ephemeral; its only durable trace is the {score, correctCount}
// result handed to onFinish exactly once. All mutations take the engine
// lock, because the timer goroutine and HTTP handlers race on the state.
type SessionEngine struct {
	mu sync.Mutex

	accountKey string
	questions  []domain.Question
	timing     sessionTiming
	notifier   ports.CueNotifier
	onFinish   func(result domain.SessionResult)
	rng        *rand.Rand

	phase          domain.SessionPhase
	index          int
	timeLeft       int // ticks
	score          int
	correctCount   int
	streak         int
	selected       *int
	hidden         []int
	fiftyFiftyUsed bool
	timeBonusUsed  bool
	reported       bool

	closed  bool
	emitted bool

	stopTicker  sync.Once
	stopCh      chan struct{}
	revealTimer *time.Timer
	finishTimer *time.Timer
}

// newSessionEngine builds and starts an engine over a non-empty question
// sequence. The sequence is fixed for the session's lifetime.
func newSessionEngine(
	accountKey string,
	questions []domain.Question,
	timing sessionTiming,
	notifier ports.CueNotifier,
	onFinish func(result domain.SessionResult),
) *SessionEngine {
	e := &SessionEngine{
		accountKey: accountKey,
		questions:  questions,
		timing:     timing,
		notifier:   notifier,
		onFinish:   onFinish,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:      domain.PhasePlaying,
		timeLeft:   timing.questionTicks,
		stopCh:     make(chan struct{}),
	}
	go e.run()
	return e
}

// run is the timer goroutine: one tick per interval while Playing.
func (e *SessionEngine) run() {
	ticker := time.NewTicker(e.timing.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *SessionEngine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.phase != domain.PhasePlaying {
		return
	}

	e.timeLeft--
	if e.timeLeft > 0 {
		e.notifier.Cue(e.accountKey, domain.CueTick)
		return
	}

	// Timeout: counts as a miss, no score change.
	e.timeLeft = 0
	e.notifier.Cue(e.accountKey, domain.CueTimeout)
	e.streak = 0
	e.reveal()
}

// Answer applies the player's option choice. Selecting after the reveal, an
// out-of-range index, or a hidden option is a no-op, not an error.
func (e *SessionEngine) Answer(option int) *ports.SessionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.phase != domain.PhasePlaying {
		return e.view()
	}
	if option < 0 || option >= len(e.questions[e.index].Options) || e.isHidden(option) {
		return e.view()
	}

	e.selected = &option
	if option == e.questions[e.index].CorrectIndex {
		e.notifier.Cue(e.accountKey, domain.CueCorrect)
		bonus := (e.streak / 2) * streakBonusStep
		e.score += pointsPerQuestion + bonus
		e.correctCount++
		e.streak++
	} else {
		e.notifier.Cue(e.accountKey, domain.CueWrong)
		e.score -= wrongPenalty
		if e.score < 0 {
			e.score = 0
		}
		e.streak = 0
	}

	e.reveal()
	return e.view()
}

// UseLifeline applies a one-shot lifeline. Reuse or use during the reveal is
// a no-op.
func (e *SessionEngine) UseLifeline(kind domain.LifelineKind) *ports.SessionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.phase != domain.PhasePlaying {
		return e.view()
	}

	switch kind {
	case domain.LifelineFiftyFifty:
		if e.fiftyFiftyUsed {
			return e.view()
		}
		e.fiftyFiftyUsed = true
		e.notifier.Cue(e.accountKey, domain.CueLifelineUsed)

		correct := e.questions[e.index].CorrectIndex
		wrong := make([]int, 0, 3)
		for i := range e.questions[e.index].Options {
			if i != correct {
				wrong = append(wrong, i)
			}
		}
		e.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
		e.hidden = wrong[:2]

	case domain.LifelineTimeBonus:
		if e.timeBonusUsed {
			return e.view()
		}
		e.timeBonusUsed = true
		e.notifier.Cue(e.accountKey, domain.CueLifelineUsed)
		e.timeLeft += e.timing.bonusTicks
	}

	return e.view()
}

// Report flags the current question as erroneous, at most once per question.
// Cosmetic: no scoring effect.
func (e *SessionEngine) Report() *ports.SessionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.closed && e.phase != domain.PhaseFinished {
		e.reported = true
	}
	return e.view()
}

// View returns the current session snapshot.
func (e *SessionEngine) View() *ports.SessionView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view()
}

// Close tears the engine down: ticker and any pending delayed transition are
// cancelled so nothing mutates a session that no longer exists. A session
// closed before the finish delay fires never settles.
func (e *SessionEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.stopTicker.Do(func() { close(e.stopCh) })
	if e.revealTimer != nil {
		e.revealTimer.Stop()
	}
	if e.finishTimer != nil {
		e.finishTimer.Stop()
	}
}

// reveal moves Playing → Revealing and schedules the auto-advance.
// Caller holds the lock.
func (e *SessionEngine) reveal() {
	e.phase = domain.PhaseRevealing
	e.revealTimer = time.AfterFunc(e.timing.revealDelay, e.advance)
}

// advance moves Revealing → Playing(next) or Revealing → Finished.
func (e *SessionEngine) advance() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	if e.index < len(e.questions)-1 {
		e.index++
		e.selected = nil
		e.hidden = nil
		e.reported = false
		e.timeLeft = e.timing.questionTicks
		e.phase = domain.PhasePlaying
		return
	}

	e.phase = domain.PhaseFinished
	e.stopTicker.Do(func() { close(e.stopCh) })
	e.finishTimer = time.AfterFunc(e.timing.finishDelay, e.emit)
}

// emit hands the settlement result to onFinish exactly once.
func (e *SessionEngine) emit() {
	e.mu.Lock()
	if e.closed || e.emitted {
		e.mu.Unlock()
		return
	}
	e.emitted = true
	result := domain.SessionResult{Score: e.score, CorrectCount: e.correctCount}
	onFinish := e.onFinish
	e.mu.Unlock()

	onFinish(result)
}

func (e *SessionEngine) isHidden(option int) bool {
	for _, h := range e.hidden {
		if h == option {
			return true
		}
	}
	return false
}

// view builds a snapshot. Caller holds the lock.
func (e *SessionEngine) view() *ports.SessionView {
	q := e.questions[e.index]
	v := &ports.SessionView{
		Phase:          e.phase,
		QuestionIndex:  e.index,
		TotalQuestions: len(e.questions),
		Question: ports.QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: append([]string(nil), q.Options...),
		},
		TimeLeft:       e.timeLeft,
		Score:          e.score,
		Streak:         e.streak,
		CorrectCount:   e.correctCount,
		HiddenOptions:  append([]int(nil), e.hidden...),
		FiftyFiftyUsed: e.fiftyFiftyUsed,
		TimeBonusUsed:  e.timeBonusUsed,
		Reported:       e.reported,
	}
	if e.selected != nil {
		sel := *e.selected
		v.SelectedOption = &sel
	}
	if e.phase != domain.PhasePlaying {
		correct := q.CorrectIndex
		v.CorrectOption = &correct
	}
	return v
}
