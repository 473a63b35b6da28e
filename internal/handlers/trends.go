package handlers

import (
	"net/http"
	"strconv"
)

// GetTrends returns daily score aggregates
// @Summary Score Trends
// @Description Per-day games played, average score, and max score; optionally scoped to one user
// @Tags Stats
// @Produce json
// @Param userId query int false "User ID"
// @Param days query int false "Days back" default(7)
// @Success 200 {array} models.TrendPoint "Trend Points"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /trends [get]
func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var userID int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
			return
		}
		userID = parsed
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, http.StatusBadRequest, "Invalid days value")
			return
		}
		days = parsed
	}

	points, err := h.leaderboard.GetTrends(ctx, userID, days)
	if err != nil {
		h.logger.Errorw("Failed to query trends",
			"user_id", userID,
			"request_id", requestID(ctx),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load trends")
		return
	}

	h.jsonResponse(w, http.StatusOK, points)
}
