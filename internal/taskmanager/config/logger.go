package config

import "taskmanager/pkg/logger"

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"TASKMANAGER_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"TASKMANAGER_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps Mode onto a logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == string(logger.Production) {
		return logger.Production
	}
	return logger.Development
}
