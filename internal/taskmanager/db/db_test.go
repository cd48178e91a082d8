package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/taskmanager/config"
	"taskmanager/internal/taskmanager/db"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path", func(t *testing.T) {
		dir := t.TempDir()

		got, err := db.MigrationsURL(dir)
		require.NoError(t, err)
		assert.Equal(t, "file://"+filepath.ToSlash(dir), got)
	})

	t.Run("relative path", func(t *testing.T) {
		got, err := db.MigrationsURL("migrations/taskmanager")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(got, "file://"))
		assert.True(t, strings.HasSuffix(got, "migrations/taskmanager"))
	})
}

func TestNew_MigrationFailure(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "u",
		Password: "p",
		Database: "d",
		SSLMode:  "disable",
	}

	database, err := db.New(context.Background(), cfg, filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
