package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Account is one registered player, keyed by mobile number.
// The full record (profile + wallet stats) is persisted as a single JSON
// document and always replaced whole.
type Account struct {
	Mobile    string      `json:"mobile"`
	Name      string      `json:"name"`
	PinHash   string      `json:"pin_hash"`
	Stats     WalletStats `json:"stats"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// WalletStats is the mutable economic/progress record attached to an account.
type WalletStats struct {
	TotalScore         int             `json:"total_score"`
	Balance            decimal.Decimal `json:"balance"` // Taka
	IsPremium          bool            `json:"is_premium"`
	SubscriptionExpiry *time.Time      `json:"subscription_expiry"` // nil = no expiry tracked
	GamesPlayedToday   int             `json:"games_played_today"`
	MaxDailyGames      int             `json:"max_daily_games"`
	CompletedQuestions int             `json:"completed_questions"`
	HighestStreak      int             `json:"highest_streak"`
	LastBonusDate      *string         `json:"last_bonus_date"` // YYYY-MM-DD, nil = never claimed
	ReferralCode       string          `json:"referral_code"`
	ReferralCount      int             `json:"referral_count"`
	ReferralEarnings   decimal.Decimal `json:"referral_earnings"`
	SoundEnabled       bool            `json:"sound_enabled"`
	Achievements       []Achievement   `json:"achievements"`
}

// DefaultStats returns the stats a freshly registered free-tier account starts with.
func DefaultStats(freeDailyGames int) WalletStats {
	return WalletStats{
		TotalScore:       0,
		Balance:          decimal.Zero,
		IsPremium:        false,
		GamesPlayedToday: 0,
		MaxDailyGames:    freeDailyGames,
		ReferralCode:     NewReferralCode(),
		ReferralEarnings: decimal.Zero,
		SoundEnabled:     true,
		Achievements:     DefaultAchievements(),
	}
}

// NewReferralCode generates a "DHAN"-prefixed 4-digit referral code.
func NewReferralCode() string {
	return fmt.Sprintf("DHAN%d", rand.Intn(9000)+1000)
}

// CanStartSession reports whether the daily game limit still allows a session.
// The limit is enforced only here, at session start, never retroactively.
func (s *WalletStats) CanStartSession() bool {
	return s.GamesPlayedToday < s.MaxDailyGames
}

// BonusAvailable reports whether the daily login bonus can be claimed on the
// given calendar day (YYYY-MM-DD).
func (s *WalletStats) BonusAvailable(today string) bool {
	return s.LastBonusDate == nil || *s.LastBonusDate != today
}

// AccuracyPercent returns the profile "accuracy" figure. The formula conflates
// bonus-laden score with question count; it is preserved as-is from the
// product definition.
func (s *WalletStats) AccuracyPercent() int {
	if s.CompletedQuestions == 0 {
		return 0
	}
	pct := int(float64(s.TotalScore)/float64(s.CompletedQuestions*10)*100 + 0.5)
	if pct > 100 {
		return 100
	}
	return pct
}

// GamesPlayed returns the lifetime number of completed sessions.
func (s *WalletStats) GamesPlayed() int {
	return s.CompletedQuestions / QuestionsPerBatch
}
