package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"finflow/src/models"
	"finflow/src/schemas"
	"finflow/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.respond(w, r, []models.Asset{}, http.StatusOK)
		return
	}

	assets, err := h.AssetRepo.GetByUserID(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	h.respond(w, r, assets, http.StatusOK)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.HandleErrors(w, utils.Unauthorized("login required"))
		return
	}

	var req schemas.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	assetType := models.AssetType(req.AssetType)
	if !assetType.Valid() {
		h.HandleErrors(w, utils.UnprocessableEntity("unknown asset type"))
		return
	}
	if req.Quantity <= 0 {
		h.HandleErrors(w, utils.UnprocessableEntity("quantity must be positive"))
		return
	}
	if req.BuyPrice < 0 {
		h.HandleErrors(w, utils.UnprocessableEntity("buy price must not be negative"))
		return
	}

	asset := &models.Asset{
		UserID:    userID,
		AssetType: assetType,
		Quantity:  req.Quantity,
		BuyPrice:  req.BuyPrice,
		Date:      req.Date,
	}
	if err := h.AssetRepo.Create(ctx, asset, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, asset, http.StatusCreated)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.HandleErrors(w, utils.Unauthorized("login required"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid asset id"))
		return
	}

	if err := h.AssetRepo.Delete(ctx, id, userID); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]bool{"success": true}, http.StatusOK)
}
