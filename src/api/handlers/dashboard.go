package handlers

import (
	"context"
	"net/http"
	"time"

	"finflow/src/utils"
)

// GetDashboard computes every derived number for the current user and, when
// the session is authenticated, pushes the total profit to the leaderboard
// as a best-effort side task.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	userID := currentUserID(r)

	dashboard, err := h.Valuation.GetDashboard(ctx, userID, time.Now())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if userID > 0 {
		if user, err := h.UserRepo.GetByID(ctx, userID); err == nil {
			h.Leaderboard.SubmitAsync(user.Nick, dashboard.TotalProfit)
		}
	}

	h.respond(w, r, dashboard, http.StatusOK)
}
