// Package worker implements the background leaderboard cache warmer. Ranked
// views are pure functions of stored state and the clock, so they are
// recomputed on an interval and served from Redis; recording a game never
// invalidates anything.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/mathblitz/stats-api/internal/logic"
)

// Prometheus metrics
var (
	refreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathblitz_leaderboard_refreshes_total",
		Help: "Total number of leaderboard cache refresh passes",
	})

	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathblitz_leaderboard_refresh_failures_total",
		Help: "Total number of failed leaderboard cache writes",
	})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mathblitz_leaderboard_refresh_duration_seconds",
		Help:    "Duration of a full leaderboard cache refresh pass",
		Buckets: prometheus.DefBuckets,
	})

	cacheAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mathblitz_leaderboard_cache_age_seconds",
		Help: "Seconds since the last successful refresh pass",
	})
)

// WarmerConfig configures the cache warmer.
type WarmerConfig struct {
	Interval time.Duration
	CacheTTL time.Duration
	Limit    int
	Boards   logic.LeaderboardService
	Redis    logic.RedisCache
	Logger   *zap.Logger
}

// Warmer periodically recomputes every timeframe's leaderboard at the
// default limit and stores the JSON payload in Redis.
type Warmer struct {
	config      WarmerConfig
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *zap.SugaredLogger
	lastRefresh time.Time
}

// NewWarmer creates a warmer with defaults filled in.
func NewWarmer(cfg WarmerConfig) *Warmer {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 4 * cfg.Interval
	}
	if cfg.Limit <= 0 {
		cfg.Limit = logic.DefaultLeaderboardLimit
	}
	return &Warmer{
		config: cfg,
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the refresh loop. The first pass runs immediately so the
// cache is populated before the first request arrives.
func (w *Warmer) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run()

	w.logger.Infow("Leaderboard warmer started",
		"interval", w.config.Interval,
		"ttl", w.config.CacheTTL,
		"limit", w.config.Limit,
	)
}

// Stop shuts the warmer down and waits for the in-flight pass to finish.
func (w *Warmer) Stop() {
	w.logger.Info("Stopping leaderboard warmer...")
	w.cancel()
	w.wg.Wait()
	w.logger.Info("Leaderboard warmer stopped")
}

func (w *Warmer) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.RefreshAll(w.ctx)

	for {
		select {
		case <-ticker.C:
			w.RefreshAll(w.ctx)
			cacheAge.Set(time.Since(w.lastRefresh).Seconds())
		case <-w.ctx.Done():
			return
		}
	}
}

// RefreshAll recomputes and caches every timeframe once.
func (w *Warmer) RefreshAll(ctx context.Context) {
	start := time.Now()
	failed := false

	for _, tf := range logic.AllTimeframes {
		if err := w.refreshOne(ctx, tf); err != nil {
			w.logger.Errorw("Leaderboard refresh failed", "timeframe", tf, "error", err)
			refreshFailures.Inc()
			failed = true
		}
	}

	refreshes.Inc()
	refreshDuration.Observe(time.Since(start).Seconds())
	if !failed {
		w.lastRefresh = time.Now()
		cacheAge.Set(0)
	}
}

func (w *Warmer) refreshOne(ctx context.Context, tf logic.Timeframe) error {
	entries, err := w.config.Boards.GetLeaderboard(ctx, tf, w.config.Limit)
	if err != nil {
		return fmt.Errorf("compute leaderboard: %w", err)
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	key := logic.LeaderboardCacheKey(tf, w.config.Limit)
	if err := w.config.Redis.Set(ctx, key, payload, w.config.CacheTTL).Err(); err != nil {
		return fmt.Errorf("cache leaderboard: %w", err)
	}
	return nil
}
