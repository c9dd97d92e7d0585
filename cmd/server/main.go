// Package main is the entry point for the stock management admin API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"stockadmin/internal/core/config"
	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/domain/reason"
	"stockadmin/internal/domain/stockcard"
	"stockadmin/internal/infrastructure/cache"
	v1 "stockadmin/internal/infrastructure/http/v1"
	"stockadmin/internal/infrastructure/http/v1/handlers"
	"stockadmin/internal/infrastructure/http/v1/middleware"
	"stockadmin/internal/infrastructure/stockmanagement"
	"stockadmin/internal/infrastructure/storage/postgres"
	"stockadmin/internal/infrastructure/storage/postgres/adjustment_repo"
	"stockadmin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting stockadmin server", "env", cfg.AppEnv)

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL, cfg.DBMaxConns))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	txManager := postgres.NewTxManager(pool)

	// --- Redis ---
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, reference data will be read upstream", "addr", cfg.RedisAddr, "error", err)
	}

	// --- Upstream stock management API ---
	upstream := stockmanagement.NewClient(stockmanagement.Config{
		BaseURL: cfg.StockManagementURL,
		Token:   cfg.StockManagementToken,
		Timeout: cfg.UpstreamTimeout,
	})
	reference := cache.NewReferenceCache(redisClient, upstream, cfg.ReferenceCacheTTL)

	// --- Domain services ---
	submissionLog, err := adjustment_repo.NewSubmissionLog(txManager)
	if err != nil {
		log.Fatalw("failed to create submission log", "error", err)
	}
	defer submissionLog.Close()

	adjustmentService := adjustment.NewService(
		adjustment_repo.NewDraftRepo(txManager),
		txManager,
		adjustment.NewSubmitter(upstream),
	).WithSubmissionLog(submissionLog)
	reasonService := reason.NewService(upstream, reference)
	stockCards := stockcard.NewRepository(upstream.Summaries())

	// --- Metrics ---
	metrics := middleware.NewMetrics()
	metrics.Registerer().MustRegister(postgres.NewPoolCollector(pool))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:  log,
		Metrics: metrics,
		HealthChecks: map[string]handlers.Check{
			"database": pool.Ping,
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
		AdjustmentService: adjustmentService,
		ReasonService:     reasonService,
		StockCards:        stockCards,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
