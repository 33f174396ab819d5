package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type windowCounter struct {
	start time.Time
	count int
}

var (
	rlMu      sync.Mutex
	rlClients = make(map[string]*windowCounter)
)

// SimpleRateLimit is the in-memory fixed-window fallback used when Redis
// is not configured. Per-process only, which is fine for a single
// instance.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rlMu.Lock()
		wc, ok := rlClients[ip]
		if !ok || now.Sub(wc.start) > window {
			rlClients[ip] = &windowCounter{start: now, count: 1}
			rlMu.Unlock()
			c.Next()
			return
		}
		wc.count++
		count := wc.count
		rlMu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues("api", c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
