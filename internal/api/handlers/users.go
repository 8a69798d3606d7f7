package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/auth"
	"github.com/dvloznov/polarix/internal/store"
)

// UsersHandler handles the caller's own account.
type UsersHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(s store.Store, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{store: s, log: log}
}

// GetMe handles GET /api/users/profile
func (h *UsersHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	user, err := h.store.Users().GetUserByID(r.Context(), id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("User not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to fetch user", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// UpdateMe handles PUT /api/users/profile. Empty fields keep their value.
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	users := h.store.Users()
	current, err := users.GetUserByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("User not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to update user", err))
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = current.Username
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = current.Email
	}

	if username != current.Username {
		if _, err := users.GetUserByUsername(ctx, username); err == nil {
			middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Username already exists"))
			return
		}
	}
	if email != current.Email {
		if _, err := users.GetUserByEmail(ctx, email); err == nil {
			middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Email already exists"))
			return
		}
	}

	updated, err := users.UpdateUserIdentity(ctx, id.UserID, username, email)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Username or email already exists"))
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("User not found"))
		return
	case err != nil:
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to update user", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, updated)
}

// ChangePassword handles PUT /api/users/change-password
func (h *UsersHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Current and new password are required"))
		return
	}

	user, err := h.store.Users().GetUserByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("User not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to change password", err))
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Current password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to change password", err))
		return
	}
	if err := h.store.Users().UpdatePassword(ctx, user.ID, hash); err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to change password", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// DeleteMe handles DELETE /api/users. Owned data goes first so a
// failure part-way leaves the user able to retry.
func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"profiles", func() error { return h.store.Profiles().DeleteProfilesByOwner(ctx, id.UserID) }},
		{"categories", func() error { return h.store.Categories().DeleteCategoriesByOwner(ctx, id.UserID) }},
		{"accounts", func() error { return h.store.Accounts().DeleteAccountsByOwner(ctx, id.UserID) }},
		{"transactions", func() error { return h.store.Transactions().DeleteTransactionsByOwner(ctx, id.UserID) }},
		{"sections", func() error { return h.store.Sections().DeleteSectionsByOwner(ctx, id.UserID) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			h.log.Error().Err(err).Str("user_id", id.UserID).Str("step", step.name).Msg("Account deletion failed")
			middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to delete account", err))
			return
		}
	}

	err = h.store.Users().DeleteUser(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("User not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to delete account", err))
		return
	}

	h.log.Info().Str("user_id", id.UserID).Msg("User account deleted")
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "User account deleted successfully"})
}
