package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mathblitz/stats-api/internal/logic"
	"github.com/mathblitz/stats-api/internal/models"
)

// CreateUser logs a player in, creating the account on first use
// @Summary Login or Create User
// @Description Resolves a username to an account, creating it if missing
// @Tags Users
// @Accept json
// @Produce json
// @Param body body models.CreateUserRequest true "Username"
// @Success 200 {object} models.CreateUserResponse "Existing User"
// @Success 201 {object} models.CreateUserResponse "New User"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Username is required")
		return
	}

	user, created, err := h.users.LoginOrCreate(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, logic.ErrValidation) {
			h.errorResponse(w, http.StatusBadRequest, "Username is required")
			return
		}
		h.logger.Errorw("Failed to login user",
			"username", req.Username,
			"request_id", requestID(r.Context()),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to login user")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.jsonResponse(w, status, models.CreateUserResponse{
		ID:       user.ID,
		Username: user.Username,
		IsNew:    created,
	})
}

// GetUserStats returns the aggregate profile for a single user
// @Summary User Statistics
// @Description Lifetime totals, recent games, and per-operation accuracy
// @Tags Stats
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.UserStatsView "User Stats"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /users/{userId}/stats [get]
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	view, err := h.stats.GetUserStats(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("Failed to load user stats",
			"user_id", userID,
			"request_id", requestID(r.Context()),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	h.jsonResponse(w, http.StatusOK, view)
}

// GetUserRank returns a user's all-time position
// @Summary User Rank
// @Description 1 plus the number of users with a strictly higher best score
// @Tags Leaderboards
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]int "Rank"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /users/{userId}/rank [get]
func (h *Handler) GetUserRank(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	rank, err := h.leaderboard.GetUserRank(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("Failed to compute rank",
			"user_id", userID,
			"request_id", requestID(r.Context()),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute rank")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]int{"rank": rank})
}
