package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dhandhan-quiz-backend/config"
	httpHandler "dhandhan-quiz-backend/internal/adapter/http/handler"
	pgStorage "dhandhan-quiz-backend/internal/adapter/storage/postgres"
	redisStorage "dhandhan-quiz-backend/internal/adapter/storage/redis"
	"dhandhan-quiz-backend/internal/adapter/ws"
	"dhandhan-quiz-backend/internal/core/ports"
	"dhandhan-quiz-backend/internal/service"
	"dhandhan-quiz-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting DhanDhan Quiz backend")

	rules, err := service.NewGameRules(cfg.Game)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game configuration")
	}

	ctx := context.Background()

	// Initialize Redis client (primary store)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	healthCheckers := []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)}

	// Optional PostgreSQL audit trail
	var auditRepo ports.AuditRepository
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected, audit trail enabled")
		auditRepo = pgStorage.NewAuditRepository(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Initialize stores
	accountStore := redisStorage.NewAccountStore(rdb)
	depositLog := redisStorage.NewDepositLog(rdb)
	withdrawalLog := redisStorage.NewWithdrawalLog(rdb)
	seenQuestions := redisStorage.NewSeenQuestions(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Initialize business services
	provider := service.NewGeminiProvider(cfg.Provider, log)
	questionSvc := service.NewQuestionService(provider, seenQuestions, rules.QuestionsPerSession, log)
	subSvc := service.NewSubscriptionService(accountStore, auditSvc, rules.FreeDailyGames, log)
	authSvc := service.NewAuthService(accountStore, hashSvc, tokenSvc, subSvc, auditSvc, cfg.Admin, rules.FreeDailyGames, log)
	settlementSvc := service.NewSettlementService(accountStore, questionSvc, auditSvc, rules, log)

	hub := ws.NewHub()
	gameSvc := service.NewGameService(accountStore, questionSvc, settlementSvc, subSvc, hub, rules, log)
	walletSvc := service.NewWalletService(accountStore, subSvc, rules, log)
	workflowSvc := service.NewWorkflowService(accountStore, depositLog, withdrawalLog, auditSvc, rules, log)
	reportingSvc := service.NewReportingService(accountStore, depositLog, withdrawalLog)

	// Midnight reset of daily game counters
	resetScheduler, err := service.NewResetScheduler(accountStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create reset scheduler")
	}
	if err := resetScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reset scheduler")
	}
	defer resetScheduler.Stop()

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		GameSvc:        gameSvc,
		WalletSvc:      walletSvc,
		WorkflowSvc:    workflowSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		Hub:            hub,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
