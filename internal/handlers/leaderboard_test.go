package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/mathblitz/stats-api/internal/logic"
	"github.com/mathblitz/stats-api/internal/models"
)

func TestGetLeaderboard_CacheHit(t *testing.T) {
	cached := []models.LeaderboardEntry{
		{Rank: 1, UserID: 3, Username: "alice", BestScore: 150},
	}
	payload, _ := json.Marshal(cached)

	serviceCalled := false
	h := newTestHandler(Config{
		Redis: &MockCache{
			GetFunc: func(ctx context.Context, key string) *redis.StringCmd {
				if want := logic.LeaderboardCacheKey(logic.TimeframeWeek, 10); key != want {
					t.Errorf("cache key = %q, want %q", key, want)
				}
				cmd := redis.NewStringCmd(ctx)
				cmd.SetVal(string(payload))
				return cmd
			},
		},
		Leaderboard: &MockLeaderboardService{
			GetLeaderboardFunc: func(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error) {
				serviceCalled = true
				return nil, nil
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/leaderboard?timeframe=week", nil)
	w := httptest.NewRecorder()

	h.GetLeaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if serviceCalled {
		t.Error("cache hit still queried the database")
	}

	var got []models.LeaderboardEntry
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Errorf("entries = %+v", got)
	}
}

func TestGetLeaderboard_CacheMissFallsThrough(t *testing.T) {
	var gotTf logic.Timeframe
	var gotLimit int
	h := newTestHandler(Config{
		Leaderboard: &MockLeaderboardService{
			GetLeaderboardFunc: func(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error) {
				gotTf = tf
				gotLimit = limit
				return []models.LeaderboardEntry{{Rank: 1, Username: "bob"}}, nil
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/leaderboard?timeframe=month", nil)
	w := httptest.NewRecorder()

	h.GetLeaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotTf != logic.TimeframeMonth {
		t.Errorf("timeframe = %q, want month", gotTf)
	}
	if gotLimit != logic.DefaultLeaderboardLimit {
		t.Errorf("limit = %d, want default", gotLimit)
	}
}

func TestGetLeaderboard_CorruptCacheFallsThrough(t *testing.T) {
	serviceCalled := false
	h := newTestHandler(Config{
		Redis: &MockCache{
			GetFunc: func(ctx context.Context, key string) *redis.StringCmd {
				cmd := redis.NewStringCmd(ctx)
				cmd.SetVal("{not json")
				return cmd
			},
		},
		Leaderboard: &MockLeaderboardService{
			GetLeaderboardFunc: func(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error) {
				serviceCalled = true
				return []models.LeaderboardEntry{}, nil
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/leaderboard", nil)
	w := httptest.NewRecorder()

	h.GetLeaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !serviceCalled {
		t.Error("corrupt cache entry was served")
	}
}

func TestGetLeaderboard_NonCachedLimitSkipsCache(t *testing.T) {
	cacheRead := false
	h := newTestHandler(Config{
		Redis: &MockCache{
			GetFunc: func(ctx context.Context, key string) *redis.StringCmd {
				cacheRead = true
				cmd := redis.NewStringCmd(ctx)
				cmd.SetErr(redis.Nil)
				return cmd
			},
		},
		Leaderboard: &MockLeaderboardService{},
	})

	req := httptest.NewRequest("GET", "/api/leaderboard?limit=50", nil)
	w := httptest.NewRecorder()

	h.GetLeaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cacheRead {
		t.Error("cache consulted for a limit the warmer never writes")
	}
}

func TestGetLeaderboard_InvalidParamsFallBackToDefaults(t *testing.T) {
	var gotTf logic.Timeframe
	var gotLimit int
	h := newTestHandler(Config{
		Leaderboard: &MockLeaderboardService{
			GetLeaderboardFunc: func(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error) {
				gotTf = tf
				gotLimit = limit
				return []models.LeaderboardEntry{}, nil
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/leaderboard?timeframe=fortnight&limit=-2", nil)
	w := httptest.NewRecorder()

	h.GetLeaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotTf != logic.TimeframeAll {
		t.Errorf("timeframe = %q, want all", gotTf)
	}
	if gotLimit != logic.DefaultLeaderboardLimit {
		t.Errorf("limit = %d, want default", gotLimit)
	}
}

func TestGetLeaderboard_ServiceError(t *testing.T) {
	h := newTestHandler(Config{
		Leaderboard: &MockLeaderboardService{
			GetLeaderboardFunc: func(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error) {
				return nil, errors.New("db down")
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/leaderboard", nil)
	w := httptest.NewRecorder()

	h.GetLeaderboard(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGetTrends_TableDriven(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		wantUserID     int64
		wantDays       int
	}{
		{name: "Defaults", query: "", expectedStatus: http.StatusOK, wantUserID: 0, wantDays: 0},
		{name: "Scoped", query: "?userId=5&days=30", expectedStatus: http.StatusOK, wantUserID: 5, wantDays: 30},
		{name: "Bad User", query: "?userId=abc", expectedStatus: http.StatusBadRequest},
		{name: "Negative Days", query: "?days=-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var gotDays int
			h := newTestHandler(Config{
				Leaderboard: &MockLeaderboardService{
					GetTrendsFunc: func(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error) {
						gotUserID = userID
						gotDays = days
						return []models.TrendPoint{}, nil
					},
				},
			})

			req := httptest.NewRequest("GET", "/api/trends"+tt.query, nil)
			w := httptest.NewRecorder()

			h.GetTrends(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK {
				if gotUserID != tt.wantUserID || gotDays != tt.wantDays {
					t.Errorf("service called with user=%d days=%d", gotUserID, gotDays)
				}
			}
		})
	}
}
