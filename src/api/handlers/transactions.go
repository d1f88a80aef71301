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

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.respond(w, r, []models.Transaction{}, http.StatusOK)
		return
	}

	transactions, err := h.TransactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.HandleErrors(w, utils.Unauthorized("login required"))
		return
	}

	var req schemas.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if req.Type != models.TransactionTypeIncome && req.Type != models.TransactionTypeExpense {
		h.HandleErrors(w, utils.UnprocessableEntity("type must be income or expense"))
		return
	}
	if req.Amount < 0 {
		h.HandleErrors(w, utils.UnprocessableEntity("amount must not be negative"))
		return
	}

	transaction := &models.Transaction{
		UserID:   userID,
		Type:     req.Type,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
		Note:     req.Note,
	}
	if err := h.TransactionRepo.Create(ctx, transaction, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusCreated)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := currentUserID(r)
	if userID == 0 {
		h.HandleErrors(w, utils.Unauthorized("login required"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid transaction id"))
		return
	}

	if err := h.TransactionRepo.Delete(ctx, id, userID); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]bool{"success": true}, http.StatusOK)
}
