package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	playerToken = "player-token"
	adminToken  = "admin-token"
	playerKey   = "01712345678"
)

// --- stub services ---

type stubTokenSvc struct{}

func (s *stubTokenSvc) Generate(string, string) (string, time.Time, error) {
	return playerToken, time.Now().Add(time.Hour), nil
}

func (s *stubTokenSvc) Validate(token string) (*ports.TokenClaims, error) {
	switch token {
	case playerToken:
		return &ports.TokenClaims{AccountKey: playerKey, Role: ports.RolePlayer}, nil
	case adminToken:
		return &ports.TokenClaims{Role: ports.RoleAdmin}, nil
	}
	return nil, errors.New("bad token")
}

type stubAuthSvc struct {
	result    *ports.AuthResult
	err       error
	loggedOut []string
}

func (s *stubAuthSvc) Register(_ context.Context, _ ports.RegisterRequest) (*ports.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuthSvc) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuthSvc) Logout(_ context.Context, accountKey string) error {
	s.loggedOut = append(s.loggedOut, accountKey)
	return nil
}

type stubGameSvc struct {
	view    *ports.SessionView
	err     error
	answers []int
}

func (s *stubGameSvc) Start(_ context.Context, _ string) (*ports.SessionView, error) {
	return s.view, s.err
}

func (s *stubGameSvc) Answer(_ context.Context, _ string, option int) (*ports.SessionView, error) {
	s.answers = append(s.answers, option)
	return s.view, s.err
}

func (s *stubGameSvc) UseLifeline(_ context.Context, _ string, _ domain.LifelineKind) (*ports.SessionView, error) {
	return s.view, s.err
}

func (s *stubGameSvc) ReportQuestion(_ context.Context, _ string) (*ports.SessionView, error) {
	return s.view, s.err
}

func (s *stubGameSvc) State(_ context.Context, _ string) (*ports.SessionView, error) {
	return s.view, s.err
}

func (s *stubGameSvc) Exit(_ context.Context, _ string) error { return s.err }

type stubWalletSvc struct {
	account *domain.Account
	err     error
	sound   []bool
}

func (s *stubWalletSvc) Profile(_ context.Context, _ string) (*domain.Account, error) {
	return s.account, s.err
}

func (s *stubWalletSvc) ClaimDailyBonus(_ context.Context, _ string) (*domain.Account, error) {
	return s.account, s.err
}

func (s *stubWalletSvc) SetSound(_ context.Context, _ string, enabled bool) (*domain.Account, error) {
	s.sound = append(s.sound, enabled)
	return s.account, s.err
}

type stubWorkflowSvc struct {
	deposit    *domain.DepositRequest
	withdrawal *domain.WithdrawalRequest
	err        error
	decided    []string
}

func (s *stubWorkflowSvc) CreateDeposit(_ context.Context, _ ports.CreateDepositRequest) (*domain.DepositRequest, error) {
	return s.deposit, s.err
}

func (s *stubWorkflowSvc) CreateWithdrawal(_ context.Context, req ports.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	w := *s.withdrawal
	w.Amount = req.Amount
	return &w, nil
}

func (s *stubWorkflowSvc) ApproveDeposit(_ context.Context, id string) error {
	s.decided = append(s.decided, "deposit-approve:"+id)
	return s.err
}

func (s *stubWorkflowSvc) RejectDeposit(_ context.Context, id string) error {
	s.decided = append(s.decided, "deposit-reject:"+id)
	return s.err
}

func (s *stubWorkflowSvc) ApproveWithdrawal(_ context.Context, id string) error {
	s.decided = append(s.decided, "withdrawal-approve:"+id)
	return s.err
}

func (s *stubWorkflowSvc) RejectWithdrawal(_ context.Context, id string) error {
	s.decided = append(s.decided, "withdrawal-reject:"+id)
	return s.err
}

func (s *stubWorkflowSvc) ListDeposits(_ context.Context) ([]domain.DepositRequest, error) {
	if s.deposit == nil {
		return nil, s.err
	}
	return []domain.DepositRequest{*s.deposit}, s.err
}

func (s *stubWorkflowSvc) ListWithdrawals(_ context.Context) ([]domain.WithdrawalRequest, error) {
	if s.withdrawal == nil {
		return nil, s.err
	}
	return []domain.WithdrawalRequest{*s.withdrawal}, s.err
}

type stubReportingSvc struct {
	stats   *ports.DashboardStats
	entries []ports.LeaderboardEntry
	err     error
}

func (s *stubReportingSvc) DashboardStats(_ context.Context) (*ports.DashboardStats, error) {
	return s.stats, s.err
}

func (s *stubReportingSvc) Leaderboard(_ context.Context, _ int) ([]ports.LeaderboardEntry, error) {
	return s.entries, s.err
}

func (s *stubReportingSvc) ListAccounts(_ context.Context) ([]domain.Account, error) {
	return nil, s.err
}

type stubHealthChecker struct {
	name string
	err  error
}

func (s *stubHealthChecker) Ping(_ context.Context) error { return s.err }
func (s *stubHealthChecker) Name() string                 { return s.name }

// --- fixtures ---

func testAccount() *domain.Account {
	account := &domain.Account{
		Mobile:    playerKey,
		Name:      "Rahim",
		Stats:     domain.DefaultStats(3),
		CreatedAt: time.Now().UTC(),
	}
	account.Stats.Balance = decimal.RequireFromString("3.30")
	return account
}

func testView() *ports.SessionView {
	return &ports.SessionView{
		Phase:          domain.PhasePlaying,
		QuestionIndex:  0,
		TotalQuestions: 10,
		Question: ports.QuestionView{
			ID:      "q1",
			Text:    "বাংলাদেশের জাতীয় ফল কী?",
			Options: []string{"কাঁঠাল", "আম", "লিচু", "কলা"},
		},
		TimeLeft: 12,
	}
}

type routerFixture struct {
	router      *gin.Engine
	authSvc     *stubAuthSvc
	gameSvc     *stubGameSvc
	walletSvc   *stubWalletSvc
	workflowSvc *stubWorkflowSvc
}

func newRouterFixture(checkers ...ports.HealthChecker) *routerFixture {
	f := &routerFixture{
		authSvc: &stubAuthSvc{result: &ports.AuthResult{
			Token:       playerToken,
			TokenExpiry: time.Now().Add(time.Hour),
			Role:        ports.RolePlayer,
			Account:     testAccount(),
		}},
		gameSvc:   &stubGameSvc{view: testView()},
		walletSvc: &stubWalletSvc{account: testAccount()},
		workflowSvc: &stubWorkflowSvc{
			deposit: &domain.DepositRequest{
				ID: "1001", AccountKey: playerKey, AccountName: "Rahim", Method: "bKash",
				SenderNumber: "01898765432", TrxID: "TRX12345",
				Amount: decimal.RequireFromString("99"), CreatedAt: time.Now().UTC(),
				Status: domain.RequestStatusPending,
			},
			withdrawal: &domain.WithdrawalRequest{
				ID: "1002", AccountKey: playerKey, AccountName: "Rahim", Method: "Nagad",
				ReceiverNumber: "01898765432", CreatedAt: time.Now().UTC(),
				Status: domain.RequestStatusPending,
			},
		},
	}
	f.router = SetupRouter(RouterDeps{
		AuthSvc:     f.authSvc,
		GameSvc:     f.gameSvc,
		WalletSvc:   f.walletSvc,
		WorkflowSvc: f.workflowSvc,
		ReportingSvc: &stubReportingSvc{
			stats: &ports.DashboardStats{TotalAccounts: 2, TotalBalance: decimal.RequireFromString("6.60")},
			entries: []ports.LeaderboardEntry{
				{Rank: 1, Name: "Salma", Score: 820, Prize: "৳৫০০"},
			},
		},
		TokenSvc:       &stubTokenSvc{},
		HealthCheckers: checkers,
		Logger:         zerolog.Nop(),
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// --- tests ---

func TestRegisterEndpoint(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"name":"Rahim","mobile":"01712345678","pin":"1234"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), playerToken)
	assert.Contains(t, w.Body.String(), `"referral_code"`)

	// Missing fields are rejected at binding, before the service runs.
	w = f.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"mobile":"01712345678"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}

func TestLoginEndpoint_ServiceError(t *testing.T) {
	f := newRouterFixture()
	f.authSvc.result = nil
	f.authSvc.err = apperror.ErrInvalidCredential()

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"mobile":"01712345678","pin":"9999"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestLogoutEndpoint(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/v1/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.authSvc.loggedOut)

	w = f.do(t, http.MethodPost, "/api/v1/auth/logout", playerToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logged_out":true`)
	assert.Equal(t, []string{playerKey}, f.authSvc.loggedOut)
}

func TestProfileEndpoint_RequiresToken(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodGet, "/api/v1/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/me", playerToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"3.30"`)
}

func TestGameAnswerEndpoint(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/v1/game/answer", playerToken, `{"option_index":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{2}, f.gameSvc.answers)

	// Index 0 must bind despite being the zero value.
	w = f.do(t, http.MethodPost, "/api/v1/game/answer", playerToken, `{"option_index":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{2, 0}, f.gameSvc.answers)

	w = f.do(t, http.MethodPost, "/api/v1/game/answer", playerToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/game/answer", playerToken, `{"option_index":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameStartEndpoint_DailyLimit(t *testing.T) {
	f := newRouterFixture()
	f.gameSvc.view = nil
	f.gameSvc.err = apperror.ErrDailyLimitReached()

	w := f.do(t, http.MethodPost, "/api/v1/game/start", playerToken, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "GAME_002")
}

func TestLifelineEndpoint_RejectsUnknownKind(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/v1/game/lifeline", playerToken, `{"kind":"phone_a_friend"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/game/lifeline", playerToken, `{"kind":"fifty_fifty"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSoundEndpoint(t *testing.T) {
	f := newRouterFixture()

	// "enabled": false must bind despite being the zero value.
	w := f.do(t, http.MethodPut, "/api/v1/me/sound", playerToken, `{"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []bool{false}, f.walletSvc.sound)

	w = f.do(t, http.MethodPut, "/api/v1/me/sound", playerToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepositEndpoint_Validation(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/v1/wallet/deposits", playerToken,
		`{"method":"bKash","sender_number":"12345","trx_id":"TRX12345"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/wallet/deposits", playerToken,
		`{"method":"PayPal","sender_number":"01898765432","trx_id":"TRX12345"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/wallet/deposits", playerToken,
		`{"method":"bKash","sender_number":"01898765432","trx_id":"TRX12345"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":"99.00"`)
}

func TestWithdrawalEndpoint(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/api/v1/wallet/withdrawals", playerToken,
		`{"amount":"not a number","method":"bKash","receiver_number":"01898765432"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/wallet/withdrawals", playerToken,
		`{"amount":"250","method":"bKash","receiver_number":"01898765432"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":"250.00"`)
}

func TestAdminEndpoints_RoleGate(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodGet, "/api/v1/admin/stats", playerToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_004")

	w = f.do(t, http.MethodGet, "/api/v1/admin/stats", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_balance":"6.60"`)
}

func TestAdminDecisionEndpoints(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPut, "/api/v1/admin/deposits/1001/approve", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/admin/withdrawals/1002/reject", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"deposit-approve:1001", "withdrawal-reject:1002"}, f.workflowSvc.decided)
}

func TestLeaderboardEndpoint(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodGet, "/api/v1/leaderboard", playerToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Salma", envelope.Data[0]["name"])
	assert.Equal(t, "৳৫০০", envelope.Data[0]["prize"])
}

func TestHealthEndpoint(t *testing.T) {
	f := newRouterFixture(
		&stubHealthChecker{name: "redis"},
		&stubHealthChecker{name: "postgresql", err: errors.New("connection refused")},
	)

	w := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), "connection refused")
}
