package http

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/internal/taskmanager/config"
	"taskmanager/pkg/logger"
)

const (
	appName = "taskmanager"

	logUnhandledError = "unhandled request error"
	logHealthFailed   = "health check failed"

	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

// NewApp creates the fiber app with timeouts from cfg and the given body validator.
func NewApp(cfg *config.HTTPConfig, validator fiber.StructValidator) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:         appName,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		StructValidator: validator,
		ErrorHandler:    errorHandler,
	})
}

func errorHandler(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, logUnhandledError, zap.Error(err))
	return response.HandleError(ctx, err)
}

func healthHandler(pinger Pinger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if pinger == nil {
			return response.JSON(ctx, fiber.StatusOK, fiber.Map{"status": statusOK})
		}

		requestCtx := ctx.Context()
		if err := pinger.Ping(requestCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, logHealthFailed, zap.Error(err))
			return response.JSON(ctx, fiber.StatusServiceUnavailable, fiber.Map{"status": statusUnavailable})
		}

		return response.JSON(ctx, fiber.StatusOK, fiber.Map{"status": statusOK})
	}
}
