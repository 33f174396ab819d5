package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"reader_rewards/internal/http/middleware"
	"reader_rewards/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top readers by total points. When the caller
// is authenticated and falls outside the window, their own ranked entry
// rides along.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	viewerID := ""
	if id, ok := middleware.GetIdentity(c); ok {
		viewerID = id.UserID
	}

	lb, err := h.Points.Leaderboard(c.Request.Context(), viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	// The cache holds the full configured window; a smaller limit only
	// truncates the response.
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < len(lb.Entries) {
			lb.Entries = lb.Entries[:n]
		}
	}

	c.JSON(http.StatusOK, lb)
}

// GetMyRank returns the caller's leaderboard position. Users without a
// ledger row rank as 0, mirroring an empty profile widget.
func (h *Handler) GetMyRank(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entry, err := h.Points.Rank(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"rank": 0, "total_points": 0})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rank": entry.Rank, "total_points": entry.TotalPoints})
}
