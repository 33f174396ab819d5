package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"reader_rewards/internal/gamify"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests: run only if DATABASE_URL is set and the schema from
// internal/migrations is applied.
func testRepo(t *testing.T) *PointsRepository {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return NewPointsRepository(pool)
}

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestCreditReadDuplicateGuardIntegration(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	userID := uniqueID("it-user")

	first, err := repo.CreditRead(ctx, userID, "post-1", "alice", "")
	if err != nil {
		t.Fatalf("first credit: %v", err)
	}
	if first.AlreadyCredited || first.TotalPoints != 1 {
		t.Fatalf("first credit = %+v", first)
	}
	if len(first.NewlyUnlocked) != 1 || first.NewlyUnlocked[0].ID != "first-read" {
		t.Errorf("expected first-read unlock, got %v", first.NewlyUnlocked)
	}

	second, err := repo.CreditRead(ctx, userID, "post-1", "alice", "")
	if err != nil {
		t.Fatalf("duplicate credit: %v", err)
	}
	if !second.AlreadyCredited || second.TotalPoints != 1 {
		t.Fatalf("duplicate credit = %+v", second)
	}

	up, err := repo.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if up.TotalPoints != 1 || up.ReadCount != 1 || up.LastReadPost != "post-1" {
		t.Errorf("record after duplicate = %+v", up)
	}
	if up.Level != gamify.LevelForPoints(up.TotalPoints) {
		t.Errorf("stored level %d != derived %d", up.Level, gamify.LevelForPoints(up.TotalPoints))
	}
}

func TestCreditReadConcurrentIntegration(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	userID := uniqueID("it-conc")

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.CreditRead(ctx, userID, fmt.Sprintf("post-%d", i), "bob", ""); err != nil {
				t.Errorf("concurrent credit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	up, err := repo.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if up.TotalPoints != workers || up.ReadCount != workers {
		t.Errorf("lost update: total=%d reads=%d, want %d", up.TotalPoints, up.ReadCount, workers)
	}
}

func TestRankIntegration(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	low := uniqueID("it-low")
	high := uniqueID("it-high")

	if _, err := repo.CreditRead(ctx, low, "post-a", "low", ""); err != nil {
		t.Fatalf("credit: %v", err)
	}
	for _, post := range []string{"post-a", "post-b", "post-c"} {
		if _, err := repo.CreditRead(ctx, high, post, "high", ""); err != nil {
			t.Fatalf("credit: %v", err)
		}
	}

	lowRank, err := repo.Rank(ctx, low)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	highRank, err := repo.Rank(ctx, high)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if highRank.Rank >= lowRank.Rank {
		t.Errorf("rank ordering wrong: high=%d low=%d", highRank.Rank, lowRank.Rank)
	}

	if _, err := repo.Rank(ctx, "absent-user"); err != ErrUserNotFound {
		t.Errorf("rank of absent user: %v, want ErrUserNotFound", err)
	}
}

func TestTopOrderingIntegration(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	entries, err := repo.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].TotalPoints > entries[i-1].TotalPoints {
			t.Errorf("leaderboard not descending at %d: %d > %d",
				i, entries[i].TotalPoints, entries[i-1].TotalPoints)
		}
		if entries[i].Rank != entries[i-1].Rank+1 {
			t.Errorf("ranks not consecutive at %d", i)
		}
	}
}
