package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(ratePerSecond float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(ratePerSecond, burst))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func doPing(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	router := newRateLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		rec := doPing(router, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	router := newRateLimitedRouter(1, 2)

	doPing(router, "10.0.0.1")
	doPing(router, "10.0.0.1")
	rec := doPing(router, "10.0.0.1")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestRateLimitBucketsPerClient(t *testing.T) {
	router := newRateLimitedRouter(1, 1)

	assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.1").Code)

	// A different client gets its own bucket.
	assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.2").Code)
}
