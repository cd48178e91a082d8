package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRequestIDLength bounds ids accepted from callers.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext stores requestID in ctx after NormalizeRequestID.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, NormalizeRequestID(requestID))
}

// NormalizeRequestID returns an owned copy of id when it is non-empty printable
// ASCII of at most MaxRequestIDLength bytes, and a fresh id otherwise.
// Caller ids end up in log fields and response headers.
func NormalizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < '!' || c > '~' {
			return GenerateRequestID()
		}
	}
	return strings.Clone(id)
}

// GetRequestID returns the request id stored in ctx.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID returns a new random UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// WithRequestID returns a child logger with the request id field, or l itself when ctx has none.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}
