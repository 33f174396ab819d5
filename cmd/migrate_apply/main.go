package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reader_rewards/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Applies the SQL files under the migrations directory in name order.
// Files are idempotent (CREATE IF NOT EXISTS), so re-running after a
// partial failure is safe.
func main() {
	apply := flag.Bool("apply", false, "run the migrations instead of listing them")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Fatal("failed to read migrations directory", "dir", *dir, "error", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if !*apply {
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("failed to connect", "error", err)
	}
	defer pool.Close()

	for _, name := range names {
		sql, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			logger.Fatal("failed to read migration", "file", name, "error", err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logger.Fatal("migration failed", "file", name, "error", err)
		}
		logger.Info("applied migration", "file", name)
	}
}
