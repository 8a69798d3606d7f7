package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/auth"
	"github.com/dvloznov/polarix/internal/bootstrap"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// AuthHandler handles signup and the two login flows.
type AuthHandler struct {
	users  store.UserRepository
	tokens TokenIssuer
	google auth.GoogleVerifier
	boot   *bootstrap.Bootstrapper
	log    zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users store.UserRepository, tokens TokenIssuer, google auth.GoogleVerifier, boot *bootstrap.Bootstrapper, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, google: google, boot: boot, log: log}
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Username, email and password are required"))
		return
	}

	if _, err := h.users.GetUserByEmail(ctx, req.Email); err == nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Conflict("User already exists with this email."))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Signup failed", err))
		return
	}
	if _, err := h.users.GetUserByUsername(ctx, req.Username); err == nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Username already exists"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Signup failed", err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Signup failed", err))
		return
	}

	user := &domain.User{ID: uuid.NewString(), Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.WriteAppError(w, r, h.log, apperrors.Conflict("User already exists with this email."))
			return
		}
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Signup failed", err))
		return
	}
	h.log.Info().Str("user_id", user.ID).Msg("New user saved")

	// The user row exists from here on, so the response is 201 even if
	// seeding fails; Run logs the failure.
	result, _ := h.boot.Run(ctx, user)

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{
		"message":     "User created successfully",
		"emailStatus": result.EmailStatus(),
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Username and password are required"))
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Login failed", err))
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		middleware.WriteAppError(w, r, h.log, apperrors.Unauthenticated("Invalid credentials"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Login failed", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"token":    token,
		"username": user.Username,
		"email":    user.Email,
		"userId":   user.ID,
	})
}

// GoogleLogin handles POST /api/auth/google. Unknown emails get a new
// account, bootstrapped like a signup.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Credential string `json:"credential"`
	}
	if err := decodeJSON(w, r, &req); err != nil || req.Credential == "" {
		h.writeGoogleFailure(w)
		return
	}

	ident, err := h.google.Verify(ctx, req.Credential)
	if err != nil {
		h.log.Warn().Err(err).Msg("Google token rejected")
		h.writeGoogleFailure(w)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, ident.Email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = h.createGoogleUser(r, ident)
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Google login failed", err))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Google login failed", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]string{
			"username": user.Username,
			"email":    user.Email,
			"userId":   user.ID,
			"token":    token,
		},
	})
}

func (h *AuthHandler) writeGoogleFailure(w http.ResponseWriter) {
	middleware.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"message": "Invalid Google token",
	})
}

// createGoogleUser stores a user for a first-time Google sign-in. The
// password is a random hash nobody knows, so password login stays closed.
func (h *AuthHandler) createGoogleUser(r *http.Request, ident *auth.GoogleIdentity) (*domain.User, error) {
	ctx := r.Context()

	username := strings.TrimSpace(ident.Name)
	if username == "" {
		username, _, _ = strings.Cut(ident.Email, "@")
	}
	base := username
	if _, err := h.users.GetUserByUsername(ctx, username); err == nil {
		username = suffixed(base)
	}

	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	user := &domain.User{ID: uuid.NewString(), Username: username, Email: ident.Email, PasswordHash: hash}
	err = h.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		// Either a concurrent first login took the email, or someone else
		// took the username after the check above.
		existing, lookupErr := h.users.GetUserByEmail(ctx, ident.Email)
		if lookupErr == nil {
			return existing, nil
		}
		if !errors.Is(lookupErr, store.ErrNotFound) {
			return nil, lookupErr
		}
		user.Username = suffixed(base)
		err = h.users.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	h.log.Info().Str("user_id", user.ID).Msg("New Google user saved")
	_, _ = h.boot.Run(ctx, user)
	return user, nil
}

func suffixed(username string) string {
	return username + "-" + uuid.NewString()[:8]
}
