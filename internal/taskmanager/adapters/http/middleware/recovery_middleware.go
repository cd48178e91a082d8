package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/pkg/logger"
)

const (
	logPanicRecovered = "panic recovered"
	logPanicResponse  = "failed to send error response after panic"
)

// NewRecoveryMiddleware turns a handler panic into a 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := ctx.Context()

		defer func() {
			if r := recover(); r != nil {
				log := logger.Log(requestCtx)
				log.Error(requestCtx, logPanicRecovered,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if sendErr := response.Error(ctx, fiber.StatusInternalServerError, response.MsgInternalError); sendErr != nil {
					log.Error(requestCtx, logPanicResponse, zap.Error(sendErr))
				}
				err = nil
			}
		}()

		return ctx.Next()
	}
}
