package middleware

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/pkg/logger"
)

const (
	logRateLimited     = "request rate limited"
	logClientsEvicted  = "idle rate limit clients evicted"
	logCleanupStopped  = "rate limiter cleanup stopped"
	defaultIdleTTL     = 3 * time.Minute
	minRetryAfterInSec = 1
)

// RateLimitRecorder is notified about rejected requests. The limiter runs
// before routing, so only the HTTP method is reported.
type RateLimitRecorder interface {
	RecordRateLimited(method string)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	recorder RateLimitRecorder
	now      func() time.Time
}

// NewRateLimiter allows rps requests per second per client with the given burst.
// recorder may be nil.
func NewRateLimiter(rps float64, burst int, idleTTL time.Duration, recorder RateLimitRecorder) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		recorder: recorder,
		now:      time.Now,
	}
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		now := rl.now()
		limiter := rl.limiter(ctx.IP(), now)

		res := limiter.ReserveN(now, 1)
		delay := res.DelayFrom(now)
		if res.OK() && delay == 0 {
			return ctx.Next()
		}
		res.CancelAt(now)

		requestCtx := ctx.Context()
		logger.Log(requestCtx).Warn(requestCtx, logRateLimited,
			zap.String("ip", ctx.IP()),
			zap.String("path", ctx.Path()),
			zap.Duration("retry_after", delay))

		if rl.recorder != nil {
			// fiber reuses the request buffer behind Method.
			rl.recorder.RecordRateLimited(strings.Clone(ctx.Method()))
		}

		ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(delay)))
		return response.Error(ctx, fiber.StatusTooManyRequests, response.MsgTooManyRequests)
	}
}

// Cleanup drops clients idle for longer than the idle TTL and returns how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	removed := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := logger.Log(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Debug(ctx, logCleanupStopped)
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				log.Debug(ctx, logClientsEvicted, zap.Int("count", n))
			}
		}
	}
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func (rl *RateLimiter) limiter(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func retryAfterSeconds(delay time.Duration) int {
	secs := int(math.Ceil(delay.Seconds()))
	if secs < minRetryAfterInSec {
		return minRetryAfterInSec
	}
	return secs
}
