package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// CreditRateLimit bounds read credits per user (not per IP) using Redis,
// so a scripted client cannot farm points. Requires the JWT middleware to
// have stored the identity first.
func CreditRateLimit(maxCredits int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			// Redis not configured, fail-open
			c.Next()
			return
		}

		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "credit_rl:" + id.UserID + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-CreditRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-CreditRateLimit-Limit", strconv.Itoa(maxCredits))
		remaining := int64(maxCredits) - val
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-CreditRateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if val > int64(maxCredits) {
			RLBlocked.WithLabelValues("credit", c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "credit rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLAllowed.WithLabelValues("credit", c.FullPath()).Inc()
		c.Next()
	}
}
