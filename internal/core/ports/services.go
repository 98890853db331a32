package ports

import (
	"context"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"

	"github.com/shopspring/decimal"
)

// HashService handles PIN hashing (Argon2id).
type HashService interface {
	Hash(pin string) (string, error)
	Verify(pin string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(accountKey string, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// Token roles.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AccountKey string
	Role       string
}

// QuestionProvider is the external question-generation collaborator.
// Implementations must return at least count items or an error; dedup and
// fallback handling live above this port.
type QuestionProvider interface {
	Generate(ctx context.Context, count int) ([]domain.Question, error)
}

// CueNotifier delivers fire-and-forget game cues to a player. Implementations
// must never block the session engine and cannot fail it.
type CueNotifier interface {
	Cue(accountKey string, cue domain.Cue)
	// SessionFinished pushes the settlement summary once a session settles.
	SessionFinished(accountKey string, result domain.SessionResult, earned decimal.Decimal)
}

// --- Service Ports (Business Logic) ---

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, mobile, pin string) (*AuthResult, error)
	// Logout records the end of a login session. Tokens are stateless, so
	// the client discards the token; this call only leaves the audit trace.
	Logout(ctx context.Context, accountKey string) error
}

// RegisterRequest holds validated input for account registration.
type RegisterRequest struct {
	Name   string
	Mobile string
	Pin    string
}

// AuthResult holds a logged-in identity. Account is nil for the admin role.
type AuthResult struct {
	Token       string
	TokenExpiry time.Time
	Role        string
	Account     *domain.Account
	// SubscriptionExpired is set when the login downgraded a lapsed
	// premium account, so the caller can surface the notice.
	SubscriptionExpired bool
}

// GameService runs quiz sessions, one active session per account at most.
type GameService interface {
	Start(ctx context.Context, accountKey string) (*SessionView, error)
	Answer(ctx context.Context, accountKey string, option int) (*SessionView, error)
	UseLifeline(ctx context.Context, accountKey string, kind domain.LifelineKind) (*SessionView, error)
	ReportQuestion(ctx context.Context, accountKey string) (*SessionView, error)
	State(ctx context.Context, accountKey string) (*SessionView, error)
	Exit(ctx context.Context, accountKey string) error
}

// SessionView is a snapshot of a running session. The correct option is only
// populated once the current question has been revealed.
type SessionView struct {
	Phase          domain.SessionPhase
	QuestionIndex  int
	TotalQuestions int
	Question       QuestionView
	TimeLeft       int // seconds
	Score          int
	Streak         int
	CorrectCount   int
	HiddenOptions  []int
	FiftyFiftyUsed bool
	TimeBonusUsed  bool
	Reported       bool
	SelectedOption *int
	CorrectOption  *int
}

// QuestionView is a question as shown to the player, answer withheld.
type QuestionView struct {
	ID      string
	Text    string
	Options []string
}

// SubscriptionService evaluates premium expiry against the wall clock.
type SubscriptionService interface {
	// CheckAccount downgrades a lapsed premium account and persists the
	// change. Returns the (possibly updated) account and whether a
	// downgrade happened.
	CheckAccount(ctx context.Context, account *domain.Account) (*domain.Account, bool, error)
}

// SettlementService folds a finished session's result into persisted stats.
type SettlementService interface {
	Settle(ctx context.Context, accountKey string, result domain.SessionResult) (*Settlement, error)
}

// Settlement is the outcome of applying one session result.
type Settlement struct {
	Earned            decimal.Decimal
	Stats             domain.WalletStats
	DailyLimitReached bool
}

// QuestionService provides de-duplicated question batches per account.
type QuestionService interface {
	// Batch returns the ready batch for the account, fetching one if needed.
	Batch(ctx context.Context, accountKey string) ([]domain.Question, error)
	// Prefetch starts an asynchronous fetch of the next batch. A response
	// that arrives after a newer fetch began is discarded.
	Prefetch(accountKey string)
	// Consume marks the account's current batch as used.
	Consume(accountKey string)
}

// WorkflowService is the deposit/withdrawal request lifecycle.
type WorkflowService interface {
	CreateDeposit(ctx context.Context, req CreateDepositRequest) (*domain.DepositRequest, error)
	ApproveDeposit(ctx context.Context, id string) error
	RejectDeposit(ctx context.Context, id string) error
	CreateWithdrawal(ctx context.Context, req CreateWithdrawalRequest) (*domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id string) error
	RejectWithdrawal(ctx context.Context, id string) error
	ListDeposits(ctx context.Context) ([]domain.DepositRequest, error)
	ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
}

// CreateDepositRequest holds validated input for a premium purchase claim.
type CreateDepositRequest struct {
	AccountKey   string
	Method       string
	SenderNumber string
	TrxID        string
}

// CreateWithdrawalRequest holds validated input for a payout claim.
type CreateWithdrawalRequest struct {
	AccountKey     string
	Amount         decimal.Decimal
	Method         string
	ReceiverNumber string
}

// WalletService is the player-facing profile and wallet surface.
type WalletService interface {
	// Profile returns the account, downgrading a lapsed subscription first.
	Profile(ctx context.Context, accountKey string) (*domain.Account, error)
	// ClaimDailyBonus credits the daily login bonus, once per calendar day.
	ClaimDailyBonus(ctx context.Context, accountKey string) (*domain.Account, error)
	// SetSound toggles the account's sound preference.
	SetSound(ctx context.Context, accountKey string, enabled bool) (*domain.Account, error)
}

// ReportingService is the admin read model and the public leaderboard.
type ReportingService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// DashboardStats is the admin dashboard aggregate, recomputed on demand.
type DashboardStats struct {
	TotalAccounts      int
	TotalBalance       decimal.Decimal
	PremiumAccounts    int
	PendingWithdrawals int
	PendingDeposits    int
}

// LeaderboardEntry is one ranked leaderboard row.
type LeaderboardEntry struct {
	Rank  int
	Name  string
	Score int
	Prize string
}

// AuditService records audit trail entries (fire-and-forget).
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
