package middleware

import (
	"net/http"
	"strings"

	"github.com/dvloznov/polarix/internal/auth"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token and attaches
// the caller identity to the context of those that have one. A missing
// token is 401; an unusable one is 403.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				WriteError(w, http.StatusUnauthorized, "Access denied, no token provided")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				WriteError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{UserID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
