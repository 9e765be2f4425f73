package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterExpiry = 5 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a per-client-IP token bucket middleware. Idle entries are
// pruned lazily so the map does not grow without bound.
func RateLimit(ratePerSecond float64, burst int) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		entries   = make(map[string]*limiterEntry)
		lastPrune = time.Now()
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastPrune) > limiterExpiry {
			for key, entry := range entries {
				if now.Sub(entry.lastSeen) > limiterExpiry {
					delete(entries, key)
				}
			}
			lastPrune = now
		}

		entry, ok := entries[ip]
		if !ok {
			entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
			entries[ip] = entry
		}
		entry.lastSeen = now
		allowed := entry.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
