// Package db prepares the taskmanager database: migrations first, then the pool.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/config"
	"taskmanager/pkg/db/postgres"
	"taskmanager/pkg/logger"
)

const (
	LogDBInitializing    = "initializing taskmanager database"
	LogDBInitialized     = "taskmanager database initialized successfully"
	LogMigrationStarting = "starting taskmanager database migrations"
)

const (
	ErrDBMigrations = "failed to apply taskmanager database migrations"
	ErrDBConnection = "failed to connect to taskmanager database"
	ErrGetPath      = "failed to resolve migrations path"
)

// DB is the taskmanager database handle.
type DB struct {
	database *postgres.Database
}

// New applies the migrations found in migrationsDir and opens the connection pool.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsURL turns a directory into an absolute file:// source URL.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + filepath.ToSlash(dir), nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Close closes the pool.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool returns the pgx pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
