package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RequestRecorder receives one observation per finished request.
type RequestRecorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
}

// NewMetricsMiddleware records method, matched route, status and latency.
// The route template is used as label so ids do not explode cardinality.
func NewMetricsMiddleware(recorder RequestRecorder) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fiberErr *fiber.Error
		if err != nil && errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		// Label values outlive the request, so they must not alias fiber's buffers.
		recorder.RecordRequest(strings.Clone(ctx.Method()), strings.Clone(ctx.Route().Path), status, time.Since(start))
		return err
	}
}
