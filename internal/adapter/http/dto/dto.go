package dto

import (
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
)

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=50"`
	Mobile string `json:"mobile" binding:"required"`
	Pin    string `json:"pin" binding:"required"`
}

// LoginRequest is the request body for login. The admin credential travels
// through the same endpoint.
type LoginRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	Pin    string `json:"pin" binding:"required"`
}

// AuthResponse is the response body for successful registration or login.
type AuthResponse struct {
	Token               string           `json:"token"`
	Expiry              int64            `json:"expiry"` // Unix timestamp
	Role                string           `json:"role"`
	SubscriptionExpired bool             `json:"subscription_expired,omitempty"`
	Profile             *ProfileResponse `json:"profile,omitempty"` // absent for admin
}

// ProfileResponse is the player profile with derived wallet figures.
type ProfileResponse struct {
	Mobile             string               `json:"mobile"`
	Name               string               `json:"name"`
	TotalScore         int                  `json:"total_score"`
	Balance            string               `json:"balance"`
	IsPremium          bool                 `json:"is_premium"`
	SubscriptionExpiry *int64               `json:"subscription_expiry,omitempty"`
	GamesPlayedToday   int                  `json:"games_played_today"`
	MaxDailyGames      int                  `json:"max_daily_games"`
	GamesPlayed        int                  `json:"games_played"`
	HighestStreak      int                  `json:"highest_streak"`
	AccuracyPercent    int                  `json:"accuracy_percent"`
	BonusAvailable     bool                 `json:"bonus_available"`
	ReferralCode       string               `json:"referral_code"`
	SoundEnabled       bool                 `json:"sound_enabled"`
	Achievements       []domain.Achievement `json:"achievements"`
}

// NewProfileResponse maps an account to its API shape.
func NewProfileResponse(account *domain.Account) *ProfileResponse {
	resp := &ProfileResponse{
		Mobile:           account.Mobile,
		Name:             account.Name,
		TotalScore:       account.Stats.TotalScore,
		Balance:          account.Stats.Balance.StringFixed(2),
		IsPremium:        account.Stats.IsPremium,
		GamesPlayedToday: account.Stats.GamesPlayedToday,
		MaxDailyGames:    account.Stats.MaxDailyGames,
		GamesPlayed:      account.Stats.GamesPlayed(),
		HighestStreak:    account.Stats.HighestStreak,
		AccuracyPercent:  account.Stats.AccuracyPercent(),
		BonusAvailable:   account.Stats.BonusAvailable(time.Now().Format("2006-01-02")),
		ReferralCode:     account.Stats.ReferralCode,
		SoundEnabled:     account.Stats.SoundEnabled,
		Achievements:     account.Stats.Achievements,
	}
	if account.Stats.SubscriptionExpiry != nil {
		expiry := account.Stats.SubscriptionExpiry.Unix()
		resp.SubscriptionExpiry = &expiry
	}
	return resp
}

// AnswerRequest is the request body for answering the current question.
type AnswerRequest struct {
	OptionIndex *int `json:"option_index" binding:"required,min=0,max=3"`
}

// LifelineRequest is the request body for using a lifeline.
type LifelineRequest struct {
	Kind string `json:"kind" binding:"required,oneof=fifty_fifty time_bonus"`
}

// SessionResponse is the session snapshot pushed back after every game call.
type SessionResponse struct {
	Phase          string           `json:"phase"`
	QuestionIndex  int              `json:"question_index"`
	TotalQuestions int              `json:"total_questions"`
	Question       QuestionResponse `json:"question"`
	TimeLeft       int              `json:"time_left"`
	Score          int              `json:"score"`
	Streak         int              `json:"streak"`
	CorrectCount   int              `json:"correct_count"`
	HiddenOptions  []int            `json:"hidden_options,omitempty"`
	FiftyFiftyUsed bool             `json:"fifty_fifty_used"`
	TimeBonusUsed  bool             `json:"time_bonus_used"`
	Reported       bool             `json:"reported"`
	SelectedOption *int             `json:"selected_option,omitempty"`
	CorrectOption  *int             `json:"correct_option,omitempty"`
}

// QuestionResponse is a question as shown to the player.
type QuestionResponse struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// NewSessionResponse maps a session view to its API shape.
func NewSessionResponse(view *ports.SessionView) SessionResponse {
	return SessionResponse{
		Phase:          string(view.Phase),
		QuestionIndex:  view.QuestionIndex,
		TotalQuestions: view.TotalQuestions,
		Question: QuestionResponse{
			ID:      view.Question.ID,
			Text:    view.Question.Text,
			Options: view.Question.Options,
		},
		TimeLeft:       view.TimeLeft,
		Score:          view.Score,
		Streak:         view.Streak,
		CorrectCount:   view.CorrectCount,
		HiddenOptions:  view.HiddenOptions,
		FiftyFiftyUsed: view.FiftyFiftyUsed,
		TimeBonusUsed:  view.TimeBonusUsed,
		Reported:       view.Reported,
		SelectedOption: view.SelectedOption,
		CorrectOption:  view.CorrectOption,
	}
}

// SoundRequest is the request body for the sound preference toggle.
type SoundRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// DepositCreateRequest is the request body for a premium purchase claim.
// The amount is fixed server-side by the plan price.
type DepositCreateRequest struct {
	Method       string `json:"method" binding:"required,oneof=bKash Nagad Rocket"`
	SenderNumber string `json:"sender_number" binding:"required,bd_mobile"`
	TrxID        string `json:"trx_id" binding:"required"`
}

// WithdrawalCreateRequest is the request body for a payout claim.
// Amount is a decimal string in Taka.
type WithdrawalCreateRequest struct {
	Amount         string `json:"amount" binding:"required"`
	Method         string `json:"method" binding:"required,oneof=bKash Nagad Rocket"`
	ReceiverNumber string `json:"receiver_number" binding:"required,bd_mobile"`
}

// RequestResponse is one deposit or withdrawal request row.
type RequestResponse struct {
	ID           string `json:"id"`
	AccountKey   string `json:"account_key"`
	AccountName  string `json:"account_name"`
	Method       string `json:"method"`
	Counterparty string `json:"counterparty"`
	TrxID        string `json:"trx_id,omitempty"`
	Amount       string `json:"amount"`
	CreatedAt    string `json:"created_at"`
	Status       string `json:"status"`
}

// NewDepositResponse maps a deposit request to its API shape.
func NewDepositResponse(req *domain.DepositRequest) RequestResponse {
	return RequestResponse{
		ID:           req.ID,
		AccountKey:   req.AccountKey,
		AccountName:  req.AccountName,
		Method:       req.Method,
		Counterparty: req.SenderNumber,
		TrxID:        req.TrxID,
		Amount:       req.Amount.StringFixed(2),
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
		Status:       string(req.Status),
	}
}

// NewWithdrawalResponse maps a withdrawal request to its API shape.
func NewWithdrawalResponse(req *domain.WithdrawalRequest) RequestResponse {
	return RequestResponse{
		ID:           req.ID,
		AccountKey:   req.AccountKey,
		AccountName:  req.AccountName,
		Method:       req.Method,
		Counterparty: req.ReceiverNumber,
		Amount:       req.Amount.StringFixed(2),
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
		Status:       string(req.Status),
	}
}

// LeaderboardEntryResponse is one public leaderboard row.
type LeaderboardEntryResponse struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Prize string `json:"prize,omitempty"`
}

// DashboardStatsResponse is the admin dashboard aggregate.
type DashboardStatsResponse struct {
	TotalAccounts      int    `json:"total_accounts"`
	TotalBalance       string `json:"total_balance"`
	PremiumAccounts    int    `json:"premium_accounts"`
	PendingDeposits    int    `json:"pending_deposits"`
	PendingWithdrawals int    `json:"pending_withdrawals"`
}

// AdminAccountResponse is one account row in the admin panel.
type AdminAccountResponse struct {
	Mobile           string `json:"mobile"`
	Name             string `json:"name"`
	TotalScore       int    `json:"total_score"`
	Balance          string `json:"balance"`
	IsPremium        bool   `json:"is_premium"`
	GamesPlayedToday int    `json:"games_played_today"`
	CreatedAt        string `json:"created_at"`
}

// NewAdminAccountResponse maps an account to its admin panel row.
func NewAdminAccountResponse(account *domain.Account) AdminAccountResponse {
	return AdminAccountResponse{
		Mobile:           account.Mobile,
		Name:             account.Name,
		TotalScore:       account.Stats.TotalScore,
		Balance:          account.Stats.Balance.StringFixed(2),
		IsPremium:        account.Stats.IsPremium,
		GamesPlayedToday: account.Stats.GamesPlayedToday,
		CreatedAt:        account.CreatedAt.Format(time.RFC3339),
	}
}
