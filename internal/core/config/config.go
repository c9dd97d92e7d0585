// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	AppEnv       string        `envconfig:"APP_ENV" default:"development"`
	AppPort      string        `envconfig:"APP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"APP_IDLE_TIMEOUT" default:"60s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Database

	RedisAddr         string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	ReferenceCacheTTL time.Duration `envconfig:"REFERENCE_CACHE_TTL" default:"10m"`

	// StockManagementURL is the base URL of the upstream stock management /
	// reference data API (e.g. https://demo.openlmis.org).
	StockManagementURL   string        `envconfig:"STOCKMANAGEMENT_BASE_URL" required:"true"`
	StockManagementToken string        `envconfig:"STOCKMANAGEMENT_TOKEN"`
	UpstreamTimeout      time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`

	// Background worker.
	DraftRetention time.Duration `envconfig:"DRAFT_RETENTION" default:"720h"`
	WorkerInterval time.Duration `envconfig:"WORKER_INTERVAL" default:"1h"`
}

// Database holds the PostgreSQL settings shared by every command.
type Database struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

// LoadDatabase reads only the database settings. Used by tools that
// never talk to the upstream API.
func LoadDatabase() (*Database, error) {
	var cfg Database
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, errors.New("upstream timeout must be positive")
	}
	if cfg.WorkerInterval <= 0 {
		return nil, errors.New("worker interval must be positive")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}
