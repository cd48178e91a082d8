// Package middleware contains the fiber middleware of the REST API.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"taskmanager/pkg/logger"
)

// HeaderRequestID is read from requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware puts the caller's X-Request-ID, or a generated one, into the request context.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.SetContext(requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}

		return ctx.Next()
	}
}
