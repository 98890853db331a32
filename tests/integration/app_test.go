package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dhandhan-quiz-backend/config"
	httpHandler "dhandhan-quiz-backend/internal/adapter/http/handler"
	redisStorage "dhandhan-quiz-backend/internal/adapter/storage/redis"
	"dhandhan-quiz-backend/internal/adapter/ws"
	"dhandhan-quiz-backend/internal/core/domain"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/internal/service"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// seqProvider generates an endless stream of distinct questions whose
// correct answer is always option 0, so tests can play deterministically.
type seqProvider struct {
	next int
}

func (p *seqProvider) Generate(_ context.Context, count int) ([]domain.Question, error) {
	questions := make([]domain.Question, count)
	for i := range questions {
		p.next++
		text := fmt.Sprintf("পরীক্ষার প্রশ্ন নম্বর %d", p.next)
		questions[i] = domain.Question{
			ID:           domain.Fingerprint(text),
			Text:         text,
			Options:      []string{"সঠিক", "ভুল এক", "ভুল দুই", "ভুল তিন"},
			CorrectIndex: 0,
		}
	}
	return questions, nil
}

// testApp is a full application over miniredis, with fast game delays and a
// deterministic question provider.
type testApp struct {
	router   http.Handler
	accounts *redisStorage.AccountStore
}

func gameRules(t *testing.T) service.GameRules {
	t.Helper()
	rules, err := service.NewGameRules(config.GameConfig{
		QuestionsPerSession: 10,
		QuestionTime:        12 * time.Second,
		RevealDelay:         10 * time.Millisecond,
		FinishDelay:         20 * time.Millisecond,
		TimeBonus:           10 * time.Second,
		FreeDailyGames:      3,
		PremiumDailyGames:   30,
		FreeEarnRate:        "0.33",
		PremiumEarnRate:     "0.93",
		PlanPrice:           "99",
		SubscriptionDays:    30,
		DailyBonus:          "0.50",
		MinWithdrawal:       "200",
	})
	require.NoError(t, err)
	return rules
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zerolog.Nop()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rules := gameRules(t)

	accountStore := redisStorage.NewAccountStore(rdb)
	depositLog := redisStorage.NewDepositLog(rdb)
	withdrawalLog := redisStorage.NewWithdrawalLog(rdb)
	seenQuestions := redisStorage.NewSeenQuestions(rdb)

	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("integration-test-secret", time.Hour, "dhandhan-quiz")
	auditSvc := service.NewAuditService(nil, log)

	questionSvc := service.NewQuestionService(&seqProvider{}, seenQuestions, rules.QuestionsPerSession, log)
	subSvc := service.NewSubscriptionService(accountStore, auditSvc, rules.FreeDailyGames, log)
	admin := config.AdminConfig{Mobile: "admin", Pin: "admin123"}
	authSvc := service.NewAuthService(accountStore, hashSvc, tokenSvc, subSvc, auditSvc, admin, rules.FreeDailyGames, log)
	settlementSvc := service.NewSettlementService(accountStore, questionSvc, auditSvc, rules, log)

	hub := ws.NewHub()
	gameSvc := service.NewGameService(accountStore, questionSvc, settlementSvc, subSvc, hub, rules, log)
	walletSvc := service.NewWalletService(accountStore, subSvc, rules, log)
	workflowSvc := service.NewWorkflowService(accountStore, depositLog, withdrawalLog, auditSvc, rules, log)
	reportingSvc := service.NewReportingService(accountStore, depositLog, withdrawalLog)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		GameSvc:        gameSvc,
		WalletSvc:      walletSvc,
		WorkflowSvc:    workflowSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		Hub:            hub,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	return &testApp{router: router, accounts: accountStore}
}

// do performs a JSON request and decodes the response body.
func (a *testApp) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w.Code, decoded
}

// register creates a player account and returns its token.
func (a *testApp) register(t *testing.T, mobile, name string) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/api/v1/auth/register", "",
		fmt.Sprintf(`{"name":%q,"mobile":%q,"pin":"1234"}`, name, mobile))
	require.Equal(t, http.StatusCreated, status)
	return data(t, body)["token"].(string)
}

// loginAdmin returns an admin token.
func (a *testApp) loginAdmin(t *testing.T) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"mobile":"admin","pin":"admin123"}`)
	require.Equal(t, http.StatusOK, status)
	return data(t, body)["token"].(string)
}

// setBalance writes a balance directly into the store, bypassing the API.
func (a *testApp) setBalance(t *testing.T, mobile, balance string) {
	t.Helper()
	account, err := a.accounts.Get(context.Background(), mobile)
	require.NoError(t, err)
	require.NotNil(t, account)
	account.Stats.Balance = mustDecimal(t, balance)
	require.NoError(t, a.accounts.Save(context.Background(), account))
}

// data unwraps the success envelope.
func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data envelope: %v", body)
	return d
}
