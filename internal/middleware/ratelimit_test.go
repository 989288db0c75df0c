package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("client-a", "extraction", 3)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}
	allowed, resetAt := rl.Allow("client-a", "extraction", 3)
	assert.False(t, allowed)
	assert.False(t, resetAt.IsZero())
}

func TestRateLimiterIsolatesActionsAndClients(t *testing.T) {
	rl := NewRateLimiter()

	allowed, _ := rl.Allow("client-a", "extraction", 1)
	assert.True(t, allowed)
	allowed, _ = rl.Allow("client-a", "extraction", 1)
	assert.False(t, allowed, "second extraction for client-a should be blocked")

	allowed, _ = rl.Allow("client-a", "crawl_trigger", 1)
	assert.True(t, allowed, "a different action has its own window")

	allowed, _ = rl.Allow("client-b", "extraction", 1)
	assert.True(t, allowed, "a different client has its own window")
}

func TestPerHourMiddlewareReturns429WhenExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter()
	router := gin.New()
	router.GET("/ping", rl.PerHour("test", 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.NotEmpty(t, w2.Header().Get("Retry-After"))
}

func TestPerHourMiddlewareUnlimitedWhenZero(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter()
	router := gin.New()
	router.GET("/ping", rl.PerHour("unlimited", 0), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
