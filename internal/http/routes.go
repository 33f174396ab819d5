package http

import (
	"reader_rewards/internal/config"
	"reader_rewards/internal/http/handlers"
	"reader_rewards/internal/http/middleware"
	"reader_rewards/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface the blog pages call: the credit
// endpoint for the post page, profile points for the profile page, and
// the leaderboard endpoints.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, hub *ws.Hub, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(h.DB, h.Cache, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Session exchange
	api.POST("/auth", h.Auth)

	// Credit path (per-user limited so points cannot be farmed)
	creditRL := middleware.CreditRateLimit(cfg.CreditRateLimit, cfg.CreditRateWindow)
	api.POST("/reads", middleware.JWT(), creditRL, h.CreditRead)
	api.GET("/reads/:post_id", middleware.JWT(), h.HasRead)

	// Profile
	api.GET("/me/points", middleware.JWT(), h.MyPoints)
	api.GET("/users/:id/points", h.UserPoints)

	// Leaderboard
	api.GET("/leaderboard", middleware.OptionalJWT(), h.GetLeaderboard)
	api.GET("/leaderboard/rank", middleware.JWT(), h.GetMyRank)

	// Static gamification data
	api.GET("/achievements", h.Achievements)
	api.GET("/levels/:level", h.LevelInfo)

	// Live reward events (toasts, level-up banners)
	r.GET("/ws", ws.HandleWS(hub))
}
