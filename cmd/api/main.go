package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heyjob-backend/config"
	_ "heyjob-backend/docs" // Important for Swagger
	v1 "heyjob-backend/internal/delivery/http/v1"
	"heyjob-backend/internal/domain"
	"heyjob-backend/internal/repository/memory"
	"heyjob-backend/internal/repository/postgres"
	"heyjob-backend/internal/usecase"
	"heyjob-backend/pkg/audit"
	"heyjob-backend/pkg/auth"
	"heyjob-backend/pkg/database"
	"heyjob-backend/pkg/events"
	"heyjob-backend/pkg/logger"
	"heyjob-backend/pkg/redis"
	"heyjob-backend/pkg/telemetry"
	"heyjob-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           HeyJob Backend API
// @version         1.0
// @description     Job board backend: postings by category, owner-scoped edits, share text and exports.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger, audit log and tracing
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting heyjob backend", "port", cfg.Port, "env", cfg.Environment)

	auditLog := audit.New(cfg.ServiceName, cfg.Environment)
	defer auditLog.Sync()

	ctx := context.Background()
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Warn("Tracing disabled", "error", err)
		shutdownTracer = func() {}
	}
	defer shutdownTracer()

	// 3. Setup Store
	var (
		jobRepo  domain.JobRepository
		userRepo domain.UserRepository
	)
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		jobRepo = postgres.NewJobRepository(dbPool)
		userRepo = postgres.NewUserRepository(dbPool)
	} else {
		jobRepo = memory.NewJobRepository()
		userRepo = memory.NewUserRepository()
	}

	// 4. Optional Redis (rate limiting) and NATS (job events)
	healthChecks := map[string]usecase.Pinger{"database": jobRepo}
	if cfg.RedisURL != "" {
		if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limits fall back to memory", "error", err)
		} else {
			defer redis.Close()
			healthChecks["redis"] = usecase.PingFunc(redis.HealthCheck)
		}
	}

	publisher := events.NewNopPublisher()
	if cfg.NATSUrl != "" {
		eventLog, err := zap.NewProduction()
		if err != nil {
			eventLog = zap.NewNop()
		}
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSUrl, 5*time.Second, eventLog)
		if err != nil {
			logger.Log.Warn("NATS unavailable, job events disabled", "error", err)
		} else {
			publisher = natsPublisher
		}
	}
	defer publisher.Close()

	// 5. Setup UseCases
	validate := validation.New()
	storePolicy := usecase.StorePolicy{
		Timeout:    cfg.StoreTimeout,
		MaxRetries: cfg.StoreMaxRetries,
		RetryDelay: cfg.StoreRetryDelay,
	}
	authUC := usecase.NewAuthUsecase(userRepo, validate, storePolicy)
	jobUC := usecase.NewJobUsecase(jobRepo, publisher, auditLog, validate, usecase.JobUsecaseConfig{
		Store:            storePolicy,
		PlaceholderImage: cfg.PlaceholderImageURL,
	})
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		JobUC:        jobUC,
		HealthUC:     healthUC,
		JWKSProvider: auth.NewProvider(cfg.JWKSUrl),
		Audit:        auditLog,
		Config:       cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
