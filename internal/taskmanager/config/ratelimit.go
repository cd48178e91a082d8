package config

import "time"

// RateLimitConfig configures per-client request throttling. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS             float64       `yaml:"rps" env:"TASKMANAGER_RATE_LIMIT_RPS" env-default:"20"`
	Burst           int           `yaml:"burst" env:"TASKMANAGER_RATE_LIMIT_BURST" env-default:"40"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"TASKMANAGER_RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
	IdleTTL         time.Duration `yaml:"idle_ttl" env:"TASKMANAGER_RATE_LIMIT_IDLE_TTL" env-default:"3m"`
}

// Enabled reports whether throttling is on.
func (r *RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}
