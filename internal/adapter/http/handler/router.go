package handler

import (
	"dhandhan-quiz-backend/internal/adapter/http/middleware"
	redisStore "dhandhan-quiz-backend/internal/adapter/storage/redis"
	"dhandhan-quiz-backend/internal/adapter/ws"
	"dhandhan-quiz-backend/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	GameSvc        ports.GameService
	WalletSvc      ports.WalletService
	WorkflowSvc    ports.WorkflowService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	Hub            *ws.Hub                    // nil = cue channel disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/logout", jwtAuth, authHandler.Logout)
	}

	// --- Player routes ---
	var soundSync SoundSync
	if deps.Hub != nil {
		soundSync = deps.Hub
	}
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.WorkflowSvc, deps.ReportingSvc, soundSync)
	gameHandler := NewGameHandler(deps.GameSvc)

	me := v1.Group("/me", jwtAuth)
	{
		me.GET("", rl("wallet"), walletHandler.Profile)
		me.POST("/bonus", rl("wallet"), walletHandler.ClaimBonus)
		me.PUT("/sound", rl("wallet"), walletHandler.SetSound)
	}

	game := v1.Group("/game", jwtAuth)
	{
		game.POST("/start", rl("game_start"), gameHandler.Start)
		game.POST("/answer", gameHandler.Answer)
		game.POST("/lifeline", gameHandler.UseLifeline)
		game.POST("/report", gameHandler.ReportQuestion)
		game.GET("/state", gameHandler.State)
		game.POST("/exit", gameHandler.Exit)
	}

	wallet := v1.Group("/wallet", jwtAuth)
	{
		wallet.POST("/deposits", rl("wallet"), walletHandler.CreateDeposit)
		wallet.POST("/withdrawals", rl("wallet"), walletHandler.CreateWithdrawal)
	}

	v1.GET("/leaderboard", jwtAuth, walletHandler.Leaderboard)

	if deps.Hub != nil {
		wsHandler := NewWSHandler(deps.Hub, deps.WalletSvc)
		v1.GET("/ws", jwtAuth, wsHandler.Connect)
	}

	// --- Admin routes ---
	adminHandler := NewAdminHandler(deps.WorkflowSvc, deps.ReportingSvc)
	admin := v1.Group("/admin", jwtAuth, middleware.AdminOnly())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/accounts", adminHandler.Accounts)
		admin.GET("/deposits", adminHandler.ListDeposits)
		admin.PUT("/deposits/:id/approve", adminHandler.ApproveDeposit)
		admin.PUT("/deposits/:id/reject", adminHandler.RejectDeposit)
		admin.GET("/withdrawals", adminHandler.ListWithdrawals)
		admin.PUT("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
		admin.PUT("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
	}

	return r
}
