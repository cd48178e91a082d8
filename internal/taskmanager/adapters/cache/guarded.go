package cache

import (
	"context"
	"errors"
	"time"

	"taskmanager/internal/taskmanager/ports/cache"
	"taskmanager/internal/taskmanager/resilience"
)

// GuardedCache skips reads and writes while its breaker is open.
// Deletes always reach the backend so invalidation is never lost.
type GuardedCache struct {
	next    cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewGuardedCache wraps next with breaker.
func NewGuardedCache(next cache.Cache, breaker *resilience.CircuitBreaker) cache.Cache {
	return &GuardedCache{next: next, breaker: breaker}
}

// Get returns a miss while the breaker is open.
func (g *GuardedCache) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := g.breaker.Execute(ctx, func() error {
		var err error
		value, err = g.next.Get(ctx, key)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return "", nil
	}
	return value, err
}

// Set is dropped while the breaker is open.
func (g *GuardedCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	err := g.breaker.Execute(ctx, func() error {
		return g.next.Set(ctx, key, value, ttl)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Delete always calls the backend and records the outcome.
func (g *GuardedCache) Delete(ctx context.Context, key string) error {
	err := g.next.Delete(ctx, key)
	g.breaker.Record(ctx, err)
	return err
}

// Close closes the wrapped cache.
func (g *GuardedCache) Close() error {
	return g.next.Close()
}
