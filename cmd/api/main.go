package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mathblitz/stats-api/internal/config"
	"github.com/mathblitz/stats-api/internal/handlers"
	"github.com/mathblitz/stats-api/internal/logic"
	"github.com/mathblitz/stats-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create Postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to reach Postgres", "error", err)
	}

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to reach Redis", "error", err)
	}

	// Services
	users := logic.NewUserService(pg)
	games := logic.NewGameService(pg)
	stats := logic.NewStatsService(pg)
	boards := logic.NewLeaderboardService(pg)

	// Leaderboard cache warmer
	warmer := worker.NewWarmer(worker.WarmerConfig{
		Interval: cfg.WarmerInterval,
		CacheTTL: cfg.LeaderboardCacheTTL,
		Limit:    cfg.LeaderboardLimit,
		Boards:   boards,
		Redis:    rdb,
		Logger:   logger,
	})
	warmer.Start(ctx)

	// HTTP
	h := handlers.New(handlers.Config{
		Postgres:    pg,
		Redis:       rdb,
		Logger:      logger,
		Users:       users,
		Games:       games,
		Stats:       stats,
		Leaderboard: boards,
		CacheLimit:  cfg.LeaderboardLimit,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Router(cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
	warmer.Stop()

	sugar.Info("Goodbye")
}
