package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/adapters/cache"
	httpadapter "taskmanager/internal/taskmanager/adapters/http"
	"taskmanager/internal/taskmanager/adapters/http/middleware"
	"taskmanager/internal/taskmanager/adapters/http/validator"
	"taskmanager/internal/taskmanager/adapters/postgres"
	"taskmanager/internal/taskmanager/app"
	"taskmanager/internal/taskmanager/config"
	"taskmanager/internal/taskmanager/db"
	"taskmanager/internal/taskmanager/metrics"
	portcache "taskmanager/internal/taskmanager/ports/cache"
	"taskmanager/internal/taskmanager/ports/repositories"
	"taskmanager/internal/taskmanager/resilience"
	"taskmanager/pkg/db/redis"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/shutdown"
)

const (
	EnvLoggerMode  = "TASKMANAGER_LOGGER_MODE"
	EnvLoggerLevel = "TASKMANAGER_LOGGER_LEVEL"
)

const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateValidator      = "failed to create request validator"
	ErrSetupRouter          = "failed to set up HTTP routes"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrCloseCache           = "failed to close Redis connection"
)

// Sync errors on terminals are harmless.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	LogServiceStarted      = "taskmanager service started"
	LogServiceShutdownDone = "taskmanager service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing user cache"
	LogCacheDisabled       = "user cache disabled"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogRateLimitDisabled   = "rate limiting disabled"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing Redis connection"
	LogClosingDatabase     = "closing database connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		bodyValidator, err := validator.New()
		if err != nil {
			log.Error(ctx, ErrCreateValidator, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, cfg.Postgres.MigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		repos := postgres.NewRepositoryFactory(database.Pool())
		var userRepo repositories.UserRepository = repos.UserRepository()

		var userCache portcache.Cache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
			userCache = cache.NewGuardedCache(
				cache.NewRedisCache(client, cfg.Redis.DefaultTTL),
				resilience.NewCircuitBreaker("redis", cfg.Redis.BreakerConfig()),
			)
			userRepo = cache.NewUserRepository(userRepo, userCache, 0)
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitUseCases)
		userUseCase := app.NewUserUseCase(userRepo)
		taskUseCase := app.NewTaskUseCase(repos.TaskRepository(), userRepo)

		log.Info(ctx, LogInitHTTPServer)
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		collector := metrics.NewCollector(registry)

		backgroundCtx, stopBackground := context.WithCancel(ctx)
		defer stopBackground()

		var limiter *middleware.RateLimiter
		if cfg.RateLimit.Enabled() {
			limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL, collector)
			go limiter.Run(backgroundCtx, cfg.RateLimit.CleanupInterval)
		} else {
			log.Info(ctx, LogRateLimitDisabled)
		}

		server := httpadapter.NewApp(&cfg.HTTP, bodyValidator)
		if err := httpadapter.SetupRouter(server, httpadapter.RouterDeps{
			Users:       userUseCase,
			Tasks:       taskUseCase,
			Health:      database,
			Metrics:     collector,
			Gatherer:    registry,
			RateLimiter: limiter,
		}); err != nil {
			log.Error(ctx, ErrSetupRouter, zap.Error(err))
			if userCache != nil {
				_ = userCache.Close()
			}
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				stopBackground()
				return nil
			},
			// HTTP drains first so in-flight requests still reach storage.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				err := server.ShutdownWithContext(ctx)

				if userCache != nil {
					log.Info(ctx, LogClosingCache)
					if cacheErr := userCache.Close(); cacheErr != nil {
						log.Warn(ctx, ErrCloseCache, zap.Error(cacheErr))
					}
				}

				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return err
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
