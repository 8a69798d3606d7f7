package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("amount is required"), http.StatusBadRequest},
		{"conflict", Conflict("Category already exists"), http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("Invalid credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Access denied"), http.StatusForbidden},
		{"not found", NotFound("Category not found"), http.StatusNotFound},
		{"internal", Internal("Server error", errors.New("boom")), http.StatusInternalServerError},
		{"untyped", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("Username already exists"))

	if !errors.Is(err, Conflict("")) {
		t.Error("expected errors.Is to match on kind")
	}
	if errors.Is(err, NotFound("")) {
		t.Error("expected errors.Is not to match a different kind")
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internal("Server error", cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if got := PublicMessage(err); got != "Server error" {
		t.Errorf("PublicMessage() = %q, want %q", got, "Server error")
	}
	if got := PublicMessage(cause); got != "Internal server error" {
		t.Errorf("PublicMessage(untyped) = %q", got)
	}
}
