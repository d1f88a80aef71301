package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"finflow/src/schemas"
	"finflow/src/utils"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := h.Leaderboard.FetchRanked(ctx)
	if err != nil {
		// The local client keeps no leaderboard state; an unreachable store
		// degrades to an empty board.
		h.Logger.WithError(err).Warn("leaderboard fetch failed")
		h.respond(w, r, schemas.LeaderboardResponse{Leaderboard: []schemas.LeaderboardEntry{}}, http.StatusOK)
		return
	}

	h.respond(w, r, schemas.LeaderboardResponse{Leaderboard: entries}, http.StatusOK)
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nick == "" {
		h.HandleErrors(w, utils.BadRequest("nick and totalProfit are required"))
		return
	}

	if err := h.Leaderboard.Submit(ctx, req.Nick, req.TotalProfit); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]bool{"success": true}, http.StatusOK)
}
