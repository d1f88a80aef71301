package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"finflow/src/utils"
)

func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.HandleErrors(w, utils.Unauthorized("login required"))
		return
	}

	document, err := h.Export.Export(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, document, http.StatusOK)
}

// ImportData replaces the user's local state with the uploaded document.
// There is no merge; a malformed document is rejected before anything is
// deleted.
func (h *Handler) ImportData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.HandleErrors(w, utils.Unauthorized("login required"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("could not read request body"))
		return
	}

	if err := h.Export.Import(ctx, userID, body); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]bool{"success": true}, http.StatusOK)
}
