package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

const msgTransactionRequired = "Amount, date, category, and account are required"

// TransactionsHandler handles the caller's transactions.
type TransactionsHandler struct {
	transactions store.TransactionRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(transactions store.TransactionRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, log: log, now: time.Now}
}

// transactionRequest accepts the amount as a number or a numeric string.
// A zero amount counts as missing.
type transactionRequest struct {
	Amount      flexFloat `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Account     string    `json:"account"`
}

// toTransaction validates the request and builds the mutable fields.
func (req transactionRequest) toTransaction() (*domain.Transaction, error) {
	category := strings.TrimSpace(req.Category)
	account := strings.TrimSpace(req.Account)
	if !req.Amount.Set || req.Amount.Value == 0 || strings.TrimSpace(req.Date) == "" || category == "" || account == "" {
		return nil, apperrors.Validation(msgTransactionRequired)
	}

	date, ok := parseDate(req.Date)
	if !ok {
		return nil, apperrors.Validation("Invalid date")
	}

	return &domain.Transaction{
		Amount:      req.Amount.Value,
		Date:        date,
		Description: req.Description,
		Category:    category,
		Subcategory: strings.TrimSpace(req.Subcategory),
		Account:     account,
	}, nil
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	txs, err := h.transactions.ListTransactions(r.Context(), id.UserID)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to fetch transactions", err))
		return
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}

	middleware.WriteJSON(w, http.StatusOK, txs)
}

// Get handles GET /api/transactions/{id}
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	tx, err := h.transactions.GetTransaction(r.Context(), id.UserID, chiID(r))
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Transaction not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to fetch transaction", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// Create handles POST /api/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	tx.ID = uuid.NewString()
	tx.UserID = id.UserID
	tx.CreatedAt = h.now().UTC()

	if err := h.transactions.InsertTransaction(r.Context(), tx); err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to create transaction", err))
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Transaction created successfully",
		"transaction": tx,
	})
}

// Update handles PUT /api/transactions/{id}
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	tx.ID = chiID(r)
	tx.UserID = id.UserID

	updated, err := h.transactions.ReplaceTransaction(r.Context(), tx)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Transaction not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to update transaction", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Transaction updated successfully",
		"transaction": updated,
	})
}

// Delete handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	err = h.transactions.DeleteTransaction(r.Context(), id.UserID, chiID(r))
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Transaction not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to delete transaction", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}
