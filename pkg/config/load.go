// Package config loads typed configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"taskmanager/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgDotenvLoaded         = "environment file loaded"
	msgDotenvSkipped        = "environment file not found, using process environment"

	errFailedLoadDotenv        = "failed to load environment file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load fills a T from the process environment using cleanenv tags.
// Each path in envFiles is read with godotenv first; missing files are skipped
// and variables already set in the environment win.
func Load[T any](ctx context.Context, serviceName string, envFiles ...string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	log.Info(ctx, msgLoadingConfiguration)

	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug(ctx, msgDotenvSkipped, zap.String(attrPath, path))
				continue
			}
			log.Error(ctx, errFailedLoadDotenv, zap.String(attrPath, path), zap.Error(err))
			return nil, fmt.Errorf("%s %q: %w", errFailedLoadDotenv, path, err)
		}
		log.Info(ctx, msgDotenvLoaded, zap.String(attrPath, path))
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
