package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mathblitz/stats-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Cache is the Redis client surface the handlers use. Satisfied by
// *redis.Client.
type Cache interface {
	logic.RedisCache
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	Postgres *pgxpool.Pool
	Redis    Cache
	Logger   *zap.Logger
	// Services
	Users       logic.UserService
	Games       logic.GameService
	Stats       logic.StatsService
	Leaderboard logic.LeaderboardService
	// Leaderboard size the warmer caches at; reads at this limit hit Redis
	CacheLimit int
}

type Handler struct {
	pg          *pgxpool.Pool
	redis       Cache
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	users       logic.UserService
	games       logic.GameService
	stats       logic.StatsService
	leaderboard logic.LeaderboardService
	cacheLimit  int
}

func New(cfg Config) *Handler {
	if cfg.CacheLimit <= 0 {
		cfg.CacheLimit = logic.DefaultLeaderboardLimit
	}
	return &Handler{
		pg:          cfg.Postgres,
		redis:       cfg.Redis,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		users:       cfg.Users,
		games:       cfg.Games,
		stats:       cfg.Stats,
		leaderboard: cfg.Leaderboard,
		cacheLimit:  cfg.CacheLimit,
	}
}
