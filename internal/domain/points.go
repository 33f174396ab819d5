package domain

import (
	"time"

	"reader_rewards/internal/gamify"
)

// UserPoints is the per-user ledger record. Username and avatar are
// denormalized snapshots refreshed on every credit; identity lives with
// the auth provider, not here.
type UserPoints struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	AvatarURL    string    `json:"avatar_url"`
	TotalPoints  int64     `json:"total_points"`
	Level        int       `json:"level"`
	Achievements []string  `json:"achievements"`
	ReadCount    int64     `json:"read_count"`
	LastReadPost string    `json:"last_read_post"`
	JoinDate     time.Time `json:"join_date,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// CreditResult is what the credit operation reports back for UI
// notification (toast, level-up banner, achievement popup).
type CreditResult struct {
	UserID          string               `json:"user_id"`
	PostID          string               `json:"post_id"`
	TotalPoints     int64                `json:"total_points"`
	Level           int                  `json:"level"`
	LeveledUp       bool                 `json:"leveled_up"`
	NewlyUnlocked   []gamify.Achievement `json:"newly_unlocked"`
	AlreadyCredited bool                 `json:"already_credited"`
}

// LeaderboardEntry pairs a ledger record with its display rank.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	UserPoints
}

// Leaderboard is the top-K slice plus, when the requesting user falls
// outside the window, their own entry with an exact count-based rank.
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	Viewer  *LeaderboardEntry  `json:"viewer,omitempty"`
}
