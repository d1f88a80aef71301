package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finflow/src/schemas"
	"finflow/src/utils"
)

func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req schemas.AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	advice, err := h.Advice.GenerateAdvice(ctx, req.Balance, req.Date)
	if err != nil {
		h.respond(w, r, schemas.AdviceResponse{Success: false, Error: "Failed to generate advice"}, http.StatusInternalServerError)
		return
	}

	h.respond(w, r, schemas.AdviceResponse{Success: true, Advice: advice}, http.StatusOK)
}

func (h *Handler) EstimateValue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req schemas.AppraisalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	price, err := h.Advice.EstimateValue(ctx, req)
	if err != nil {
		var httpErr *utils.HTTPError
		if errors.As(err, &httpErr) {
			h.HandleErrors(w, err)
			return
		}
		h.respond(w, r, schemas.AppraisalResponse{Success: false, Error: "Failed to estimate value"}, http.StatusInternalServerError)
		return
	}

	h.respond(w, r, schemas.AppraisalResponse{Success: true, EstimatedPrice: price}, http.StatusOK)
}
