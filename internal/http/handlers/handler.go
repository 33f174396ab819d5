package handlers

import (
	"reader_rewards/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

type Handler struct {
	DB             *pgxpool.Pool
	Cache          *redis.Client
	Points         *service.PointsService
	PlatformSecret string
}

func NewHandler(db *pgxpool.Pool, cache *redis.Client, points *service.PointsService, platformSecret string) *Handler {
	return &Handler{
		DB:             db,
		Cache:          cache,
		Points:         points,
		PlatformSecret: platformSecret,
	}
}
