package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealplan/backend/internal/interfaces/http/dto"
)

// RateLimiter counts requests per key over a fixed window, in memory.
// Single-process only; a multi-instance deployment would need the counters
// in Redis instead.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	used    int
	resetAt time.Time
}

// NewRateLimiter allows limit requests per key within each window. A
// background goroutine drops buckets that have sat idle past their window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()
	for now := range ticker.C {
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if now.After(b.resetAt.Add(rl.window)) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow consumes one request from the key's budget and reports whether the
// request is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.After(b.resetAt) {
		rl.buckets[key] = &bucket{used: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if b.used >= rl.limit {
		return false
	}
	b.used++
	return true
}

// Remaining reports how many requests the key has left in the current window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || time.Now().After(b.resetAt) {
		return rl.limit
	}
	if b.used > rl.limit {
		return 0
	}
	return rl.limit - b.used
}

// RateLimit limits requests per client IP and annotates responses with
// X-RateLimit headers.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return rateLimitWithKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	}, "Too many requests. Please try again later.", false)
}

// AuthRateLimit is the tighter limiter for credential endpoints. Keys carry
// an "auth:" prefix so its state never collides with the global limiter, and
// blocked responses carry Retry-After.
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return rateLimitWithKey(limiter, func(c *gin.Context) string {
		return "auth:" + c.ClientIP()
	}, "Too many authentication attempts. Please try again later.", true)
}

func rateLimitWithKey(limiter *RateLimiter, keyFunc func(*gin.Context) string, message string, retryAfter bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		if !limiter.Allow(key) {
			if retryAfter {
				c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			}
			resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited, message, c.GetString(RequestIDContextKey))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
