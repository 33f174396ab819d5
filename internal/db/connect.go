package db

import (
	"context"
	"time"

	"reader_rewards/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

// Connect opens the ledger pool and verifies it before the server starts
// taking credits. The pool floor keeps headroom for concurrent credit
// transactions plus the leaderboard scans; a DSN can still raise it.
func Connect(dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid DATABASE_URL", "error", err)
	}
	if cfg.MaxConns < 8 {
		cfg.MaxConns = 8
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create ledger pool", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping ledger database", "error", err)
	}

	logger.Info("ledger database connected", "max_conns", cfg.MaxConns)
	return pool
}
