package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/mathblitz/stats-api/internal/models"
)

// PgPool defines the interface for the PostgreSQL connection pool.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RedisCache defines the interface for the leaderboard cache client.
type RedisCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// UserService resolves usernames to accounts, creating on first login.
type UserService interface {
	LoginOrCreate(ctx context.Context, username string) (models.User, bool, error)
}

// GameService persists completed sessions.
type GameService interface {
	RecordGame(ctx context.Context, req models.RecordGameRequest) (int64, error)
}

// StatsService computes per-user aggregates.
type StatsService interface {
	GetUserStats(ctx context.Context, userID int64) (*models.UserStatsView, error)
}

// LeaderboardService produces ranked views and trend series.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, tf Timeframe, limit int) ([]models.LeaderboardEntry, error)
	GetUserRank(ctx context.Context, userID int64) (int, error)
	GetTrends(ctx context.Context, userID int64, days int) ([]models.TrendPoint, error)
}
