package config

import (
	"fmt"
	"time"
)

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"TASKMANAGER_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"TASKMANAGER_HTTP_PORT" env-default:"3000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TASKMANAGER_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TASKMANAGER_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"TASKMANAGER_HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// GetAddress returns host:port for fiber's Listen.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
