package middleware

import (
	"net/http"
	"strings"

	"reader_rewards/internal/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// JWT rejects requests without a valid Bearer session token and stores
// the carried identity on the context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		id, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalJWT stores the identity when a valid token is present but never
// rejects; endpoints like the leaderboard personalize when they can.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
			if id, err := service.ParseJWT(token); err == nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// GetIdentity retrieves the identity stored by JWT or OptionalJWT.
func GetIdentity(c *gin.Context) (*service.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := val.(*service.Identity)
	return id, ok
}
