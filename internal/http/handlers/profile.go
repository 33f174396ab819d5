package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"reader_rewards/internal/domain"
	"reader_rewards/internal/gamify"
	"reader_rewards/internal/http/middleware"
	"reader_rewards/internal/repository"

	"github.com/gin-gonic/gin"
)

// MyPoints returns the caller's ledger record plus everything the profile
// widget renders: level info, next milestone, rank. A user who has never
// credited a read gets the zero state rather than a 404.
func (h *Handler) MyPoints(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	up, err := h.Points.GetUserPoints(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Zero state until the first credit creates the row; the
			// join date only exists once there is a row to date.
			up = &domain.UserPoints{
				UserID:       id.UserID,
				Username:     id.Username,
				AvatarURL:    id.AvatarURL,
				Level:        gamify.MinLevel,
				Achievements: []string{},
			}
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "points temporarily unavailable"})
			return
		}
	}

	resp := gin.H{
		"points":         up,
		"level_info":     gamify.InfoForLevel(up.Level),
		"next_milestone": gamify.NextMilestone(up.TotalPoints),
	}

	if entry, err := h.Points.Rank(ctx, id.UserID); err == nil {
		resp["rank"] = entry.Rank
	}

	c.JSON(http.StatusOK, resp)
}

// UserPoints is the public view of another user's record.
func (h *Handler) UserPoints(c *gin.Context) {
	userID := c.Param("id")

	up, err := h.Points.GetUserPoints(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "points temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points":     up,
		"level_info": gamify.InfoForLevel(up.Level),
	})
}

// Achievements returns the static catalog.
func (h *Handler) Achievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": gamify.Catalog()})
}

// LevelInfo returns display info for a level, clamped for out-of-range
// input.
func (h *Handler) LevelInfo(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level"})
		return
	}
	c.JSON(http.StatusOK, gamify.InfoForLevel(level))
}
