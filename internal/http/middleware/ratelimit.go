package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// It keeps counters in process memory and stands in for RedisRateLimit when
// Redis is not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)
	lastSweep := time.Now()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		// drop counters of clients that went quiet
		if now.Sub(lastSweep) > window {
			for k, ci := range clients {
				if now.Sub(ci.last) > window {
					delete(clients, k)
				}
			}
			lastSweep = now
		}

		ci, ok := clients[ip]
		if !ok || now.Sub(ci.last) > window {
			clients[ip] = &clientInfo{last: now, count: 1}
			mu.Unlock()
			c.Next()
			return
		}

		ci.count++
		count := ci.count
		mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
