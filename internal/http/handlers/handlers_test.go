package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reader_rewards/internal/domain"
	"reader_rewards/internal/gamify"
	"reader_rewards/internal/repository"
	"reader_rewards/internal/service"

	"github.com/gin-gonic/gin"
)

func testRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/achievements", h.Achievements)
	r.GET("/levels/:level", h.LevelInfo)
	r.POST("/reads", h.CreditRead)
	return r
}

// stubStore backs handler tests that need a points service but no
// database. A user is never found and crediting fails when creditErr is
// set.
type stubStore struct {
	creditErr error
}

func (s *stubStore) Get(context.Context, string) (*domain.UserPoints, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubStore) CreditRead(_ context.Context, userID, postID, _, _ string) (*domain.CreditResult, error) {
	if s.creditErr != nil {
		return nil, s.creditErr
	}
	return &domain.CreditResult{UserID: userID, PostID: postID, TotalPoints: 1, Level: 1}, nil
}

func (s *stubStore) HasRead(context.Context, string, string) (bool, error) { return false, nil }

func (s *stubStore) Top(context.Context, int) ([]domain.LeaderboardEntry, error) { return nil, nil }

func (s *stubStore) Rank(context.Context, string) (*domain.LeaderboardEntry, error) {
	return nil, repository.ErrUserNotFound
}

// authedRouter plants an identity the way the JWT middleware would.
func authedRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("identity", &service.Identity{UserID: "u1", Username: "alice"})
	})
	r.POST("/reads", h.CreditRead)
	r.GET("/me/points", h.MyPoints)
	return r
}

func TestLevelInfoEndpointClampsOutOfRange(t *testing.T) {
	r := testRouter(&Handler{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/levels/99", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var info gamify.LevelInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if info != gamify.InfoForLevel(1) {
		t.Errorf("got %+v, want level-1 info", info)
	}
}

func TestLevelInfoEndpointRejectsNonNumeric(t *testing.T) {
	r := testRouter(&Handler{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/levels/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAchievementsEndpoint(t *testing.T) {
	r := testRouter(&Handler{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/achievements", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Achievements []gamify.Achievement `json:"achievements"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Achievements) != 5 {
		t.Errorf("got %d achievements, want 5", len(body.Achievements))
	}
}

func TestCreditReadRequiresIdentity(t *testing.T) {
	r := testRouter(&Handler{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/reads", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreditReadStoreFailureIsNonFatal(t *testing.T) {
	points := service.NewPointsService(&stubStore{creditErr: errors.New("db down")}, nil, nil, 50, 0)
	r := authedRouter(&Handler{Points: points})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/reads", strings.NewReader(`{"post_id":"p1"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Error != "points temporarily unavailable" {
		t.Errorf("error body = %q, want the non-fatal message the frontend ignores", body.Error)
	}
}

func TestMyPointsZeroStateHasNoJoinDate(t *testing.T) {
	points := service.NewPointsService(&stubStore{}, nil, nil, 50, 0)
	r := authedRouter(&Handler{Points: points})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/me/points", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Points map[string]json.RawMessage `json:"points"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if _, ok := body.Points["join_date"]; ok {
		t.Error("zero state carries a join_date, but the user has no ledger row yet")
	}
	if string(body.Points["total_points"]) != "0" {
		t.Errorf("zero state total_points = %s, want 0", body.Points["total_points"])
	}
}

func TestLivenessEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", NewHealthHandler(nil, nil, "test").Liveness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
