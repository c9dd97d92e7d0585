// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/domain/reason"
	"stockadmin/internal/domain/stockcard"
	"stockadmin/internal/infrastructure/http/v1/handlers"
	"stockadmin/internal/infrastructure/http/v1/middleware"
	"stockadmin/pkg/logger"
)

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	Logger  *logger.Logger
	Metrics *middleware.Metrics

	// HealthChecks are run by /health/ready, keyed by dependency name.
	HealthChecks map[string]handlers.Check

	AdjustmentService *adjustment.Service
	ReasonService     *reason.Service
	StockCards        *stockcard.Repository
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", cfg.Metrics.Handler())
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.HealthChecks)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")
	{
		if cfg.AdjustmentService != nil {
			handlers.NewAdjustmentHandler(base, cfg.AdjustmentService).RegisterRoutes(api)
		}
		if cfg.ReasonService != nil {
			handlers.NewReasonHandler(base, cfg.ReasonService).RegisterRoutes(api)
		}
		if cfg.StockCards != nil {
			handlers.NewStockCardHandler(base, cfg.StockCards).RegisterRoutes(api)
		}
	}

	return router
}
