package handlers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathblitz/stats-api/internal/logic"
	"github.com/mathblitz/stats-api/internal/models"
)

// Mocks

type MockUserService struct {
	LoginOrCreateFunc func(ctx context.Context, username string) (models.User, bool, error)
}

func (m *MockUserService) LoginOrCreate(ctx context.Context, username string) (models.User, bool, error) {
	if m.LoginOrCreateFunc != nil {
		return m.LoginOrCreateFunc(ctx, username)
	}
	return models.User{ID: 1, Username: username}, false, nil
}

type MockGameService struct {
	RecordGameFunc func(ctx context.Context, req models.RecordGameRequest) (int64, error)
}

func (m *MockGameService) RecordGame(ctx context.Context, req models.RecordGameRequest) (int64, error) {
	if m.RecordGameFunc != nil {
		return m.RecordGameFunc(ctx, req)
	}
	return 1, nil
}

type MockStatsService struct {
	GetUserStatsFunc func(ctx context.Context, userID int64) (*models.UserStatsView, error)
}

func (m *MockStatsService) GetUserStats(ctx context.Context, userID int64) (*models.UserStatsView, error) {
	if m.GetUserStatsFunc != nil {
		return m.GetUserStatsFunc(ctx, userID)
	}
	return &models.UserStatsView{}, nil
}

type MockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error)
	GetUserRankFunc    func(ctx context.Context, userID int64) (int, error)
	GetTrendsFunc      func(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, tf, limit)
	}
	return []models.LeaderboardEntry{}, nil
}

func (m *MockLeaderboardService) GetUserRank(ctx context.Context, userID int64) (int, error) {
	if m.GetUserRankFunc != nil {
		return m.GetUserRankFunc(ctx, userID)
	}
	return 1, nil
}

func (m *MockLeaderboardService) GetTrends(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error) {
	if m.GetTrendsFunc != nil {
		return m.GetTrendsFunc(ctx, userID, days)
	}
	return []models.TrendPoint{}, nil
}

// MockCache satisfies the Cache interface. Get defaults to a miss.
type MockCache struct {
	GetFunc func(ctx context.Context, key string) *redis.StringCmd
	SetFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func (m *MockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	cmd := redis.NewStringCmd(ctx)
	cmd.SetErr(redis.Nil)
	return cmd
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *MockCache) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}
