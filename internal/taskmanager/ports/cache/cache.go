// Package cache defines the key/value cache port.
package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store with expiry. Get returns "" for a missing key.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	// Set stores value for ttl; a zero ttl means the implementation default.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
