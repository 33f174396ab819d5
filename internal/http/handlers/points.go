package handlers

import (
	"net/http"

	"reader_rewards/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type creditReadRequest struct {
	PostID string `json:"post_id"`
}

// CreditRead awards the read reward for the authenticated user and post.
// Crediting is decoration on the reading path, so a persistence failure
// comes back as a non-fatal error body the frontend can simply ignore.
func (h *Handler) CreditRead(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req creditReadRequest
	if err := c.BindJSON(&req); err != nil || req.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post_id required"})
		return
	}

	res, err := h.Points.CreditRead(c.Request.Context(), *id, req.PostID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "points temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// HasRead lets the post page decide whether to show the "+1" affordance.
func (h *Handler) HasRead(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID := c.Param("post_id")
	read, err := h.Points.HasRead(c.Request.Context(), id.UserID, postID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "points temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "read": read})
}
