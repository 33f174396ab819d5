package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reader_rewards/internal/config"
	"reader_rewards/internal/db"
	httpServer "reader_rewards/internal/http"
	"reader_rewards/internal/http/handlers"
	"reader_rewards/internal/http/middleware"
	"reader_rewards/internal/logger"
	"reader_rewards/internal/repository"
	"reader_rewards/internal/service"
	"reader_rewards/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	redisClient := middleware.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient == nil {
		logger.Warn("redis not available, rate limits are per-process and leaderboard reads hit the database")
	}

	hub := ws.NewHub()
	pointsRepo := repository.NewPointsRepository(dbPool)
	pointsService := service.NewPointsService(pointsRepo, redisClient, hub, cfg.LeaderboardSize, cfg.LeaderboardCacheTTL)

	r := gin.Default()

	// CORS for production (blog frontend on a different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(dbPool, redisClient, pointsService, cfg.PlatformSecret)
	httpServer.RegisterRoutes(r, h, hub, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
