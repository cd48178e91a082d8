package config

import (
	"fmt"
	"net/url"
)

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"TASKMANAGER_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"TASKMANAGER_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"TASKMANAGER_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"TASKMANAGER_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"TASKMANAGER_POSTGRES_DB" env-default:"taskmanager"`
	SSLMode  string `yaml:"ssl_mode" env:"TASKMANAGER_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"TASKMANAGER_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"TASKMANAGER_POSTGRES_MAX_CONN" env-default:"10"`

	MigrationsDir string `yaml:"migrations_dir" env:"TASKMANAGER_MIGRATIONS_DIR" env-default:"migrations/taskmanager"`
}

// GetDSN returns the keyword/value connection string used by pgxpool.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL returns the URL form used by golang-migrate.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
