// Package main is the entry point for the stockadmin background worker.
// It purges abandoned adjustment drafts and keeps the reference data cache warm.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"stockadmin/internal/core/config"
	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/infrastructure/cache"
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

	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), log))
	defer cancel()

	log.Info("starting stockadmin worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL, 2))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = redisClient.Close() }()

	upstream := stockmanagement.NewClient(stockmanagement.Config{
		BaseURL: cfg.StockManagementURL,
		Token:   cfg.StockManagementToken,
		Timeout: cfg.UpstreamTimeout,
	})

	txManager := postgres.NewTxManager(pool)
	worker := &Worker{
		drafts:    adjustment.NewService(adjustment_repo.NewDraftRepo(txManager), txManager, adjustment.NewSubmitter(upstream)),
		reference: cache.NewReferenceCache(redisClient, upstream, cfg.ReferenceCacheTTL),
		retention: cfg.DraftRetention,
		interval:  cfg.WorkerInterval,
		log:       log.WithComponent("worker"),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// Worker runs the periodic maintenance jobs.
type Worker struct {
	drafts    *adjustment.Service
	reference *cache.ReferenceCache
	retention time.Duration
	interval  time.Duration
	log       *logger.Logger
}

// Run executes every job once, then on each tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	if _, err := w.drafts.PurgeAbandoned(ctx, w.retention); err != nil {
		w.log.Errorw("draft purge failed", "error", err)
	}
	w.warmReferenceCache(ctx)
}

func (w *Worker) warmReferenceCache(ctx context.Context) {
	if err := w.reference.Invalidate(ctx); err != nil {
		w.log.Warnw("reference cache invalidation failed", "error", err)
		return
	}
	if _, err := w.reference.Programs(ctx); err != nil {
		w.log.Warnw("programs refresh failed", "error", err)
	}
	if _, err := w.reference.FacilityTypes(ctx); err != nil {
		w.log.Warnw("facility types refresh failed", "error", err)
	}
	if _, err := w.reference.Reasons(ctx); err != nil {
		w.log.Warnw("reasons refresh failed", "error", err)
	}
}
