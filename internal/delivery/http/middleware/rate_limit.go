package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"heyjob-backend/internal/delivery/http/response"
	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/audit"
	"heyjob-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis and the in-memory fallback
	KeyPrefix string
	// Reject requests when Redis errors instead of falling back to memory
	FailClosed bool
	Audit      *audit.Logger
}

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
	// removed is set once sweep has dropped the entry from the map
	removed bool
}

// memoryLimiter counts requests in process when Redis is unavailable.
type memoryLimiter struct {
	entries sync.Map
}

func (m *memoryLimiter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	for {
		v, _ := m.entries.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
		entry := v.(*rateLimitEntry)

		entry.mu.Lock()
		if entry.removed {
			entry.mu.Unlock()
			continue
		}
		if now.After(entry.resetAt) {
			entry.count = 0
			entry.resetAt = now.Add(window)
		}
		entry.count++
		count, resetAt := entry.count, entry.resetAt
		entry.mu.Unlock()
		return count, resetAt
	}
}

func (m *memoryLimiter) sweep(now time.Time) {
	m.entries.Range(func(key, value any) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) && m.entries.CompareAndDelete(key, value) {
			entry.removed = true
		}
		entry.mu.Unlock()
		return true
	})
}

var (
	fallback     = &memoryLimiter{}
	sweeperStart sync.Once
)

// INCR with TTL on first hit. Returns {count, ttl_seconds}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// GlobalRateLimitConfig limits every request per client IP.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
}

// WriteRateLimitConfig limits job mutations per principal, falling back to IP.
func WriteRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:write:",
		KeyFunc: func(c *gin.Context) string {
			if userID := c.GetString(string(domain.KeyUserID)); userID != "" {
				return "user:" + userID
			}
			return "ip:" + c.ClientIP()
		},
	}
}

// RateLimitMiddleware uses Redis when available and the in-memory limiter otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	sweeperStart.Do(func() {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for now := range ticker.C {
				fallback.sweep(now)
			}
		}()
	})

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time

		if client := redis.Client(); client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err != nil {
				if config.FailClosed {
					config.Audit.Log(c.Request.Context(), audit.Event{
						Event:     audit.EventRateLimitTriggered,
						RequestID: c.GetString(string(domain.KeyRequestID)),
						Details:   map[string]any{"error_type": "redis_error", "error": err.Error()},
					})
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = fallback.hit(fullKey, config.Window, time.Now())
			}
		} else {
			count, resetAt = fallback.hit(fullKey, config.Window, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 1)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			config.Audit.Log(c.Request.Context(), audit.Event{
				Event:     audit.EventRateLimitTriggered,
				UserID:    c.GetString(string(domain.KeyUserID)),
				RequestID: c.GetString(string(domain.KeyRequestID)),
				Details:   map[string]any{"path": c.FullPath()},
			})
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, int(config.Window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	return int(result[0]), time.Now().Add(time.Duration(result[1]) * time.Second), nil
}
