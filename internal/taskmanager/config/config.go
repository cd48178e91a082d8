// Package config holds the taskmanager service configuration.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "taskmanager/pkg/config"
	"taskmanager/pkg/logger"
)

const (
	serviceName = "taskmanager"

	// DefaultEnvFile is read before the process environment when present.
	DefaultEnvFile = ".env"

	LogConfigLoaded     = "taskmanager configuration loaded"
	ErrFailedLoadConfig = "failed to load taskmanager configuration"
)

// Config is the complete service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load reads the configuration from envFiles (DefaultEnvFile when none are given)
// and the process environment.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}

	cfg, err := pkgconfig.Load[Config](ctx, serviceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Float64("rate_limit_rps", cfg.RateLimit.RPS),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
