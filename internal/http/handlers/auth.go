package handlers

import (
	"net/http"

	"reader_rewards/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	Payload string `json:"payload"`
}

// Auth exchanges a platform-signed sign-in payload for a session token.
// Identity itself lives with the hosted auth provider; this only verifies
// the platform's signature over the profile snapshot and mints a JWT
// carrying it.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if len(req.Payload) > 4096 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload too long"})
		return
	}

	values, ok := service.ValidateSignInPayload(req.Payload, h.PlatformSecret)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or stale sign-in payload"})
		return
	}

	id := service.Identity{
		UserID:    values.Get("uid"),
		Username:  values.Get("username"),
		AvatarURL: values.Get("avatar_url"),
	}

	token, err := service.GenerateJWT(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         id.UserID,
			"username":   id.Username,
			"avatar_url": id.AvatarURL,
		},
	})
}
