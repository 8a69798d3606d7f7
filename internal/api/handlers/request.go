// Package handlers implements the HTTP endpoints. Every handler reads the
// caller identity placed in the request context by middleware.Authenticate
// and scopes all store access to it.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/auth"
	"github.com/dvloznov/polarix/internal/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

// identity returns the authenticated caller. Routes using it are always
// behind middleware.Authenticate.
func identity(r *http.Request) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok || id.UserID == "" {
		return auth.Identity{}, apperrors.Unauthenticated("Access denied, no token provided")
	}
	return id, nil
}

// requireOwnEmail checks that email is the caller's current address. The
// stored user is consulted because the token email goes stale once the
// user changes it.
func requireOwnEmail(r *http.Request, users store.UserRepository, id auth.Identity, email string) error {
	user, err := users.GetUserByID(r.Context(), id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("User not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to look up user", err)
	}
	if email != user.Email {
		return apperrors.Forbidden("Unauthorized")
	}
	return nil
}

// pathParam returns the unescaped chi URL parameter.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// flexFloat accepts a JSON number or a numeric string. Null and the empty
// string leave it unset.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = flexFloat{}
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = flexFloat{}
			return nil
		}
	} else {
		s = string(data)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexFloat{Value: v, Set: true}
	return nil
}

// dateLayouts are the accepted transaction date formats.
var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// chiID returns the {id} route parameter.
func chiID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
