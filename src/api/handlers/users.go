package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"finflow/src/schemas"
	"finflow/src/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req schemas.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	user, err := h.Auth.Register(ctx, req.Nick, req.PIN)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.UserResponse{ID: user.ID, Nick: user.Nick}, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	user, err := h.Auth.Login(ctx, req.Nick, req.PIN)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.UserResponse{ID: user.ID, Nick: user.Nick}, http.StatusOK)
}

func (h *Handler) CheckNick(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.NickCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nick == "" {
		h.HandleErrors(w, utils.BadRequest("nick is required"))
		return
	}

	taken, err := h.Leaderboard.CheckNickTaken(ctx, req.Nick)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.NickCheckResponse{Available: !taken, Exists: taken}, http.StatusOK)
}
