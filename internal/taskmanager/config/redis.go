package config

import (
	"time"

	"taskmanager/internal/taskmanager/resilience"
	"taskmanager/pkg/db/redis"
)

// RedisConfig configures the optional user lookup cache.
type RedisConfig struct {
	Enabled    bool          `yaml:"enabled" env:"TASKMANAGER_REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"TASKMANAGER_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"TASKMANAGER_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"TASKMANAGER_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"TASKMANAGER_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"TASKMANAGER_REDIS_POOL_SIZE" env-default:"10"`
	Timeout    time.Duration `yaml:"timeout" env:"TASKMANAGER_REDIS_TIMEOUT" env-default:"3s"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"TASKMANAGER_REDIS_DEFAULT_TTL" env-default:"5m"`

	BreakerFailures int           `yaml:"breaker_failures" env:"TASKMANAGER_REDIS_BREAKER_FAILURES" env-default:"5"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown" env:"TASKMANAGER_REDIS_BREAKER_COOLDOWN" env-default:"10s"`
}

// BreakerConfig returns the circuit breaker settings guarding the cache.
func (r *RedisConfig) BreakerConfig() resilience.Config {
	return resilience.Config{
		FailureThreshold: r.BreakerFailures,
		Cooldown:         r.BreakerCooldown,
		SuccessThreshold: resilience.DefaultConfig().SuccessThreshold,
	}
}

// ClientConfig converts the settings into the shared redis client config.
func (r *RedisConfig) ClientConfig() redis.Config {
	return redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}
