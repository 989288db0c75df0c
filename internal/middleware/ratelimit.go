// Package middleware holds gin middleware for the REST surface in
// internal/api: per-client rate limiting for the extraction and
// crawl-trigger endpoint families (§7).
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
)

// window tracks one client's attempt count inside the current hour.
type window struct {
	mu      sync.Mutex
	count   int
	startAt time.Time
}

// RateLimiter is a fixed-window, in-memory limiter keyed by client + action,
// the same "IP+endpointType → entry" shape as the teacher's in-memory
// limiter, with the bucket map itself replaced by a patrickmn/go-cache
// instance so expiry and cleanup aren't hand-rolled.
type RateLimiter struct {
	buckets *cache.Cache
}

// NewRateLimiter creates a limiter whose buckets age out well past any
// window this package issues (hourly limits, so a two-hour TTL is ample).
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{buckets: cache.New(2*time.Hour, 10*time.Minute)}
}

// Allow reports whether one more request from key is permitted within the
// given per-hour limit, advancing the client's window as a side effect.
func (rl *RateLimiter) Allow(key, action string, perHour int) (bool, time.Time) {
	if perHour <= 0 {
		return true, time.Time{}
	}
	bucketKey := action + ":" + key
	now := time.Now()

	raw, _ := rl.buckets.Get(bucketKey)
	w, ok := raw.(*window)
	if !ok {
		w = &window{startAt: now}
		rl.buckets.Set(bucketKey, w, cache.DefaultExpiration)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.startAt) > time.Hour {
		w.startAt = now
		w.count = 0
	}
	w.count++
	resetAt := w.startAt.Add(time.Hour)
	return w.count <= perHour, resetAt
}

// clientKey derives the rate-limit identity for a request: an API key if the
// caller sent one, otherwise the client IP, same precedence as the teacher's
// utils.GetClientIP fallback chain.
func clientKey(c *gin.Context) string {
	if key := c.GetHeader("X-Api-Key"); key != "" {
		return "key:" + key
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return "ip:" + strings.TrimSpace(xff[:idx])
		}
		return "ip:" + strings.TrimSpace(xff)
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return "ip:" + strings.TrimSpace(xri)
	}
	return "ip:" + c.ClientIP()
}

// PerHour returns gin middleware enforcing perHour requests per client per
// fixed one-hour window for the given action name, responding 429 with a Retry-After
// header once exceeded.
func (rl *RateLimiter) PerHour(action string, perHour int) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, resetAt := rl.Allow(clientKey(c), action, perHour)
		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// Extraction rate-limits the extract_url/extract_urls/extract_search family.
func (rl *RateLimiter) Extraction(perHour int) gin.HandlerFunc {
	return rl.PerHour("extraction", perHour)
}

// CrawlTrigger rate-limits crawl_awards.
func (rl *RateLimiter) CrawlTrigger(perHour int) gin.HandlerFunc {
	return rl.PerHour("crawl_trigger", perHour)
}
