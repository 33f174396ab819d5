package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reader_rewards/internal/domain"
	"reader_rewards/internal/gamify"
	"reader_rewards/internal/logger"
	"reader_rewards/internal/repository"

	redis "github.com/redis/go-redis/v9"
)

const (
	creditTimeout       = 5 * time.Second
	leaderboardCacheKey = "leaderboard:top"
)

// PointsStore is the persistence contract the service needs. Satisfied by
// repository.PointsRepository; tests substitute an in-memory fake.
type PointsStore interface {
	Get(ctx context.Context, userID string) (*domain.UserPoints, error)
	CreditRead(ctx context.Context, userID, postID, username, avatarURL string) (*domain.CreditResult, error)
	HasRead(ctx context.Context, userID, postID string) (bool, error)
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	Rank(ctx context.Context, userID string) (*domain.LeaderboardEntry, error)
}

// EventPublisher pushes reward events to a user's connected clients.
type EventPublisher interface {
	Publish(userID string, event domain.RewardEvent)
}

// PointsService orchestrates the points ledger: crediting reads,
// leaderboard assembly with a short-TTL Redis cache, and live reward
// notifications. Failures here are decoration, never page-blocking.
type PointsService struct {
	store           PointsStore
	cache           *redis.Client
	events          EventPublisher
	leaderboardSize int
	cacheTTL        time.Duration
}

func NewPointsService(store PointsStore, cache *redis.Client, events EventPublisher, leaderboardSize int, cacheTTL time.Duration) *PointsService {
	if leaderboardSize <= 0 {
		leaderboardSize = 50
	}
	return &PointsService{
		store:           store,
		cache:           cache,
		events:          events,
		leaderboardSize: leaderboardSize,
		cacheTTL:        cacheTTL,
	}
}

// CreditRead awards the fixed read reward for (user, post) at most once.
//
// The write runs under a detached context: a reader navigating away
// mid-request must not abort the credit, only the service's own timeout
// can.
func (s *PointsService) CreditRead(ctx context.Context, id Identity, postID string) (*domain.CreditResult, error) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), creditTimeout)
	defer cancel()

	res, err := s.store.CreditRead(dctx, id.UserID, postID, id.Username, id.AvatarURL)
	if err != nil {
		CreditFailuresTotal.Inc()
		logger.Error("credit read failed", "user_id", id.UserID, "post_id", postID, "error", err)
		return nil, err
	}

	if res.AlreadyCredited {
		DuplicateCreditsTotal.Inc()
		return res, nil
	}

	CreditsTotal.Inc()
	s.notify(res)
	return res, nil
}

func (s *PointsService) notify(res *domain.CreditResult) {
	for _, a := range res.NewlyUnlocked {
		AchievementUnlocksTotal.WithLabelValues(a.ID).Inc()
		if s.events != nil {
			unlocked := a
			s.events.Publish(res.UserID, domain.RewardEvent{
				Type:        domain.EventAchievementUnlocked,
				TotalPoints: res.TotalPoints,
				Achievement: &unlocked,
			})
		}
	}
	if res.LeveledUp {
		LevelUpsTotal.Inc()
		if s.events != nil {
			info := gamify.InfoForLevel(res.Level)
			s.events.Publish(res.UserID, domain.RewardEvent{
				Type:        domain.EventLevelUp,
				TotalPoints: res.TotalPoints,
				Level:       &info,
			})
		}
	}
}

// GetUserPoints returns a user's ledger record.
func (s *PointsService) GetUserPoints(ctx context.Context, userID string) (*domain.UserPoints, error) {
	return s.store.Get(ctx, userID)
}

// HasRead reports whether a post was already credited for the user.
func (s *PointsService) HasRead(ctx context.Context, userID, postID string) (bool, error) {
	return s.store.HasRead(ctx, userID, postID)
}

// Leaderboard returns the top-K entries, cache-first. When viewerID is
// set and the viewer is outside the window, their own ranked entry is
// attached. A stale cached ranking is acceptable; Redis being down only
// means every read hits Postgres.
func (s *PointsService) Leaderboard(ctx context.Context, viewerID string) (*domain.Leaderboard, error) {
	entries, err := s.cachedTop(ctx)
	if err != nil {
		return nil, err
	}

	lb := &domain.Leaderboard{Entries: entries}
	if viewerID == "" {
		return lb, nil
	}

	for _, e := range entries {
		if e.UserID == viewerID {
			return lb, nil
		}
	}

	viewer, err := s.store.Rank(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// viewer has no ledger row yet
			return lb, nil
		}
		return nil, err
	}
	lb.Viewer = viewer
	return lb, nil
}

// Rank returns a user's ranked entry.
func (s *PointsService) Rank(ctx context.Context, userID string) (*domain.LeaderboardEntry, error) {
	return s.store.Rank(ctx, userID)
}

func (s *PointsService) cachedTop(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, leaderboardCacheKey).Bytes()
		if err == nil {
			var entries []domain.LeaderboardEntry
			if err := json.Unmarshal(raw, &entries); err == nil {
				return entries, nil
			}
			logger.Warn("dropping unreadable leaderboard cache entry")
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("leaderboard cache read failed", "error", err)
		}
	}

	entries, err := s.store.Top(ctx, s.leaderboardSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
				logger.Warn("leaderboard cache write failed", "error", err)
			}
		}
	}
	return entries, nil
}
