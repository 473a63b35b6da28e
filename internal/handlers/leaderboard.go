package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mathblitz/stats-api/internal/logic"
	"github.com/mathblitz/stats-api/internal/models"
)

// GetLeaderboard returns ranked users for a timeframe
// @Summary Leaderboard
// @Description Ranked by best score, then average score; served from the warmed cache when fresh
// @Tags Leaderboards
// @Produce json
// @Param timeframe query string false "Timeframe (all, today, week, month)" default(all)
// @Param limit query int false "Limit" default(10)
// @Success 200 {array} models.LeaderboardEntry "Leaderboard"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tf := logic.ParseTimeframe(r.URL.Query().Get("timeframe"))

	limit := logic.DefaultLeaderboardLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= logic.MaxLeaderboardLimit {
			limit = parsed
		}
	}

	// The warmer keeps one limit per timeframe hot. Anything else goes to
	// the database directly.
	if limit == h.cacheLimit {
		if entries, ok := h.cachedLeaderboard(ctx, tf, limit); ok {
			h.jsonResponse(w, http.StatusOK, entries)
			return
		}
	}

	entries, err := h.leaderboard.GetLeaderboard(ctx, tf, limit)
	if err != nil {
		h.logger.Errorw("Failed to query leaderboard",
			"timeframe", tf,
			"request_id", requestID(ctx),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	h.jsonResponse(w, http.StatusOK, entries)
}

func (h *Handler) cachedLeaderboard(ctx context.Context, tf logic.Timeframe, limit int) ([]models.LeaderboardEntry, bool) {
	key := logic.LeaderboardCacheKey(tf, limit)
	raw, err := h.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warnw("Leaderboard cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		h.logger.Warnw("Corrupt leaderboard cache entry", "key", key, "error", err)
		return nil, false
	}
	return entries, true
}
