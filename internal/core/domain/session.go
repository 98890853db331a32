package domain

// SessionPhase is the state of a quiz session's state machine.
type SessionPhase string

const (
	PhasePlaying   SessionPhase = "PLAYING"
	PhaseRevealing SessionPhase = "REVEALING"
	PhaseFinished  SessionPhase = "FINISHED"
)

// LifelineKind identifies one of the two one-shot in-session aids.
type LifelineKind string

const (
	LifelineFiftyFifty LifelineKind = "fifty_fifty"
	LifelineTimeBonus  LifelineKind = "time_bonus"
)

// SessionResult is the only durable trace of a finished session, handed to
// settlement exactly once.
type SessionResult struct {
	Score        int `json:"score"`
	CorrectCount int `json:"correct_count"`
}

// Cue is a fire-and-forget audio/notification signal emitted by the session
// engine. Cues carry no return value and cannot fail the game logic.
type Cue string

const (
	CueCorrect      Cue = "correct"
	CueWrong        Cue = "wrong"
	CueTick         Cue = "tick"
	CueLifelineUsed Cue = "lifeline_used"
	CueTimeout      Cue = "timeout"
)
