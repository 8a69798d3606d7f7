package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// ProfileHandler handles the caller's personal profile.
type ProfileHandler struct {
	profiles store.ProfileRepository
	users    store.UserRepository
	log      zerolog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles store.ProfileRepository, users store.UserRepository, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users, log: log}
}

// Save handles POST /api/profile. It creates the profile on first use and
// replaces it afterwards.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var profile domain.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	if missing := profile.MissingFields(); len(missing) > 0 {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation(fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", "))))
		return
	}
	if err := requireOwnEmail(r, h.users, id, profile.Email); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	profile.UserID = id.UserID

	existing, err := h.profiles.GetProfileByEmail(ctx, profile.Email)
	switch {
	case err == nil && existing.UserID != id.UserID:
		middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Profile already exists for this email"))
		return
	case err == nil:
		profile.ID = existing.ID
		if err := h.profiles.ReplaceProfile(ctx, &profile); err != nil {
			middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to save profile", err))
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Profile updated!", "profile": profile})
		return
	case !errors.Is(err, store.ErrNotFound):
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to save profile", err))
		return
	}

	profile.ID = uuid.NewString()
	if err := h.profiles.CreateProfile(ctx, &profile); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Profile already exists for this email"))
			return
		}
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to save profile", err))
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "Profile saved!", "profile": profile})
}

// Get handles GET /api/profile/{email}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	email := pathParam(r, "email")
	if err := requireOwnEmail(r, h.users, id, email); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	profile, err := h.profiles.GetProfileByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) || (err == nil && profile.UserID != id.UserID) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Profile not found"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to fetch profile", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, profile)
}
