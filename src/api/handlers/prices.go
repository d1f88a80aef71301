package handlers

import (
	"context"
	"net/http"
	"time"

	"finflow/src/utils"
)

// GetPrices serves the current snapshot. `?refresh=true` drops the cache
// slot first, forcing a feed call.
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	if r.URL.Query().Get("refresh") == "true" {
		h.Prices.Invalidate()
	}

	snapshot, err := h.Prices.GetSnapshot(ctx)
	if err != nil {
		h.HandleErrors(w, utils.ServiceUnavailable("price feed unavailable"))
		return
	}

	h.respond(w, r, snapshot, http.StatusOK)
}
