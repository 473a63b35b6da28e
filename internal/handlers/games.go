package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mathblitz/stats-api/internal/logic"
	"github.com/mathblitz/stats-api/internal/models"
)

// RecordGame persists a finished session and its attempts
// @Summary Record Game
// @Description Stores a completed session; the session and its attempts commit together or not at all
// @Tags Games
// @Accept json
// @Produce json
// @Param body body models.RecordGameRequest true "Session Result"
// @Success 201 {object} models.RecordGameResponse "Recorded"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /games [post]
func (h *Handler) RecordGame(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.RecordGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.logger.Warnw("Rejected game payload", "error", err)
		h.errorResponse(w, http.StatusBadRequest, "Invalid game payload")
		return
	}

	gameID, err := h.games.RecordGame(r.Context(), req)
	if err != nil {
		if errors.Is(err, logic.ErrValidation) {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorw("Failed to record game",
			"user_id", req.UserID,
			"request_id", requestID(r.Context()),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to record game")
		return
	}

	h.jsonResponse(w, http.StatusCreated, models.RecordGameResponse{
		GameID:  gameID,
		Message: "Game recorded",
	})
}
