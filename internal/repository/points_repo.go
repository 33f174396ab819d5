package repository

import (
	"context"
	"errors"

	"reader_rewards/internal/domain"
	"reader_rewards/internal/gamify"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

// PointsPerRead is the fixed reward per credited read.
const PointsPerRead = 1

type PointsRepository struct {
	db *pgxpool.Pool
}

func NewPointsRepository(db *pgxpool.Pool) *PointsRepository {
	return &PointsRepository{db: db}
}

const userPointsColumns = `user_id, username, avatar_url, total_points, level,
	achievements, read_count, last_read_post, join_date, updated_at`

func scanUserPoints(row pgx.Row) (*domain.UserPoints, error) {
	var up domain.UserPoints
	err := row.Scan(
		&up.UserID,
		&up.Username,
		&up.AvatarURL,
		&up.TotalPoints,
		&up.Level,
		&up.Achievements,
		&up.ReadCount,
		&up.LastReadPost,
		&up.JoinDate,
		&up.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// Get returns the ledger record for a user.
func (r *PointsRepository) Get(ctx context.Context, userID string) (*domain.UserPoints, error) {
	up, err := scanUserPoints(r.db.QueryRow(ctx,
		`SELECT `+userPointsColumns+` FROM user_points WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return up, nil
}

// CreditRead awards the read reward for (userID, postID) at most once.
//
// The whole operation is one transaction: the read marker insert, the
// atomic point increment and the derived level/achievement update either
// all land or none do. The increment is expressed as a single
// ON CONFLICT DO UPDATE so two overlapping credits for the same user
// from distinct posts serialize on the row and neither update is lost.
func (r *PointsRepository) CreditRead(ctx context.Context, userID, postID, username, avatarURL string) (*domain.CreditResult, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Persistent duplicate guard: one row per (user, post), checked and
	// created atomically. A page reload cannot re-credit the same post.
	tag, err := tx.Exec(ctx,
		`INSERT INTO post_reads (user_id, post_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return r.alreadyCredited(ctx, userID, postID)
	}

	var (
		newTotal int64
		unlocked []string
	)
	err = tx.QueryRow(ctx,
		`INSERT INTO user_points (user_id, username, avatar_url, total_points, level, read_count, last_read_post)
		 VALUES ($1, $2, $3, $4, $5, 1, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			total_points   = user_points.total_points + $4,
			read_count     = user_points.read_count + 1,
			last_read_post = EXCLUDED.last_read_post,
			username       = EXCLUDED.username,
			avatar_url     = EXCLUDED.avatar_url,
			updated_at     = now()
		 RETURNING total_points, achievements`,
		userID, username, avatarURL, int64(PointsPerRead), gamify.LevelForPoints(PointsPerRead), postID,
	).Scan(&newTotal, &unlocked)
	if err != nil {
		return nil, err
	}

	// Derived fields are recomputed from the post-increment value while
	// the row lock from the upsert is still held.
	oldLevel := gamify.LevelForPoints(newTotal - PointsPerRead)
	newLevel := gamify.LevelForPoints(newTotal)
	newly := gamify.NewlyUnlocked(unlocked, newTotal)

	newIDs := make([]string, 0, len(newly))
	for _, a := range newly {
		newIDs = append(newIDs, a.ID)
	}

	_, err = tx.Exec(ctx,
		`UPDATE user_points SET level = $1, achievements = achievements || $2 WHERE user_id = $3`,
		newLevel, newIDs, userID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.CreditResult{
		UserID:        userID,
		PostID:        postID,
		TotalPoints:   newTotal,
		Level:         newLevel,
		LeveledUp:     newLevel > oldLevel,
		NewlyUnlocked: newly,
	}, nil
}

func (r *PointsRepository) alreadyCredited(ctx context.Context, userID, postID string) (*domain.CreditResult, error) {
	res := &domain.CreditResult{
		UserID:          userID,
		PostID:          postID,
		Level:           gamify.MinLevel,
		AlreadyCredited: true,
	}
	up, err := r.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Marker without a ledger row; report the zero state.
			return res, nil
		}
		return nil, err
	}
	res.TotalPoints = up.TotalPoints
	res.Level = up.Level
	return res, nil
}

// HasRead reports whether a read marker exists for (userID, postID).
func (r *PointsRepository) HasRead(ctx context.Context, userID, postID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_reads WHERE user_id = $1 AND post_id = $2)`,
		userID, postID,
	).Scan(&exists)
	return exists, err
}

// Top returns the top-K ledger records by total points, an indexed
// descending scan. Tie order between equal totals is unspecified.
func (r *PointsRepository) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userPointsColumns+`
		 FROM user_points
		 ORDER BY total_points DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	rank := 1
	for rows.Next() {
		up, err := scanUserPoints(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.LeaderboardEntry{Rank: rank, UserPoints: *up})
		rank++
	}
	return entries, rows.Err()
}

// Rank computes a user's leaderboard position as the number of users with
// strictly more points, plus one. Exact under a quiescent store; an
// estimate under concurrent writes, which the caller accepts.
func (r *PointsRepository) Rank(ctx context.Context, userID string) (*domain.LeaderboardEntry, error) {
	var entry domain.LeaderboardEntry
	err := scanRank(r.db.QueryRow(ctx,
		`SELECT `+userPointsColumns+`,
			(SELECT COUNT(*) FROM user_points o WHERE o.total_points > u.total_points) + 1 AS rank
		 FROM user_points u
		 WHERE u.user_id = $1`,
		userID,
	), &entry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func scanRank(row pgx.Row, entry *domain.LeaderboardEntry) error {
	return row.Scan(
		&entry.UserID,
		&entry.Username,
		&entry.AvatarURL,
		&entry.TotalPoints,
		&entry.Level,
		&entry.Achievements,
		&entry.ReadCount,
		&entry.LastReadPost,
		&entry.JoinDate,
		&entry.UpdatedAt,
		&entry.Rank,
	)
}
