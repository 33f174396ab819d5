package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// HealthHandler reports on the two dependencies of the points engine:
// Postgres, which is required, and Redis, which only degrades the
// service (rate limits fall back in-process, leaderboard reads skip the
// cache) and therefore never flips readiness.
type HealthHandler struct {
	db      *pgxpool.Pool
	cache   *redis.Client
	started time.Time
	version string
}

func NewHealthHandler(db *pgxpool.Pool, cache *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		started: time.Now(),
		version: version,
	}
}

// Liveness for the k8s liveness probe.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness for the k8s readiness probe. Unready only when the ledger
// database is unreachable; a missing or failing cache reports degraded.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	deps := gin.H{}

	if err := h.db.Ping(ctx); err != nil {
		deps["ledger_db"] = "unreachable: " + err.Error()
		status = "unready"
		code = http.StatusServiceUnavailable
	} else {
		deps["ledger_db"] = "ok"
	}

	switch {
	case h.cache == nil:
		deps["cache"] = "not configured"
	case h.cache.Ping(ctx).Err() != nil:
		deps["cache"] = "unreachable"
		if status == "ready" {
			status = "degraded"
		}
	default:
		deps["cache"] = "ok"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"version":      h.version,
		"uptime":       time.Since(h.started).Round(time.Second).String(),
		"dependencies": deps,
	})
}

// Health is the basic check used by the load balancer.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "ledger database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}
