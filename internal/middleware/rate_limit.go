package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"poolservice_backend/internal/logger"
	"poolservice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter counts hits per key inside a fixed window.
type Limiter interface {
	// Allow records one hit for key and reports whether it is within limit,
	// plus the time left until the window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// ============================================================================
// Redis
// ============================================================================

// RedisLimiter keeps one counter per key in Redis (INCR + EXPIRE), so the
// limit is shared by every instance of the API.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window, prefix: "ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, 0, err
		}
	}

	left, err := l.client.TTL(ctx, k).Result()
	if err != nil || left < 0 {
		left = l.window
	}
	return count <= int64(l.limit), left, nil
}

// ============================================================================
// In memory
// ============================================================================

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the single-process fallback used when Redis is not
// configured.
type MemoryLimiter struct {
	mu     sync.Mutex
	store  map[string]*bucket
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewMemoryLimiter(limit int, w time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		store:  make(map[string]*bucket),
		limit:  limit,
		window: w,
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.store[key]
	if !ok || now.After(w.resetAt) {
		w = &bucket{resetAt: now.Add(l.window)}
		l.store[key] = w
		l.sweep(now)
	}
	w.count++
	return w.count <= l.limit, w.resetAt.Sub(now), nil
}

// sweep drops expired windows; called with mu held.
func (l *MemoryLimiter) sweep(now time.Time) {
	if len(l.store) < 1024 {
		return
	}
	for k, w := range l.store {
		if now.After(w.resetAt) {
			delete(l.store, k)
		}
	}
}

// ============================================================================
// Middleware
// ============================================================================

// RateLimitMiddleware limits requests per client IP under scope. A limiter
// error lets the request through.
func RateLimitMiddleware(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := scope + ":" + c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(ctx, key)
		if err != nil {
			logger.CtxWithError(ctx, "Rate limiter unavailable", err, "scope", scope)
			c.Next()
			return
		}
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			logger.CtxWarn(ctx, "Rate limit exceeded", "scope", scope, "ip", c.ClientIP())
			apperrors.HandleError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
