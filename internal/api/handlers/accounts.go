package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// AccountsHandler handles the caller's financial accounts.
type AccountsHandler struct {
	accounts store.AccountRepository
	log      zerolog.Logger
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(accounts store.AccountRepository, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, log: log}
}

type accountRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/accounts
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), id.UserID)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to fetch accounts", err))
		return
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}

	middleware.WriteJSON(w, http.StatusOK, accounts)
}

// Create handles POST /api/accounts
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Account name is required"))
		return
	}

	account := &domain.Account{ID: uuid.NewString(), Name: req.Name, UserID: id.UserID}
	if err := h.accounts.InsertAccount(r.Context(), account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Account already exists"))
			return
		}
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to create account", err))
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully",
		"account": account,
	})
}

// Update handles PUT /api/accounts/{id}
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Account name is required"))
		return
	}

	account, err := h.accounts.UpdateAccount(r.Context(), id.UserID, chiID(r), req.Name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Account not found"))
		return
	case errors.Is(err, store.ErrDuplicate):
		middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Account already exists"))
		return
	case err != nil:
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to update account", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Account updated successfully",
		"account": account,
	})
}

// Delete handles DELETE /api/accounts/{id}
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	err = h.accounts.DeleteAccount(r.Context(), id.UserID, chiID(r))
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Account not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to delete account", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
