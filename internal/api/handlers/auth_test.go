package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/auth"
	"github.com/dvloznov/polarix/internal/bootstrap"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/notify"
	"github.com/dvloznov/polarix/internal/store"
	"github.com/dvloznov/polarix/internal/store/inmemory"
)

// squattingUsers lets another account take the requested username just
// before the first CreateUser call lands.
type squattingUsers struct {
	store.UserRepository
	squatted bool
}

func (u *squattingUsers) CreateUser(ctx context.Context, user *domain.User) error {
	if !u.squatted {
		u.squatted = true
		squatter := &domain.User{ID: "squatter", Username: user.Username, Email: "other@example.com"}
		if err := u.UserRepository.CreateUser(ctx, squatter); err != nil {
			return err
		}
	}
	return u.UserRepository.CreateUser(ctx, user)
}

func TestCreateGoogleUser_UsernameTakenConcurrently(t *testing.T) {
	s := inmemory.NewStore()
	users := &squattingUsers{UserRepository: s.Users()}
	boot := bootstrap.New(s, notify.NewLogNotifier(zerolog.Nop()), nil, zerolog.Nop())
	h := NewAuthHandler(users, nil, nil, boot, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", nil)
	user, err := h.createGoogleUser(req, &auth.GoogleIdentity{Email: "gina@example.com", Name: "Gina"})
	if err != nil {
		t.Fatalf("createGoogleUser failed: %v", err)
	}
	if user.Email != "gina@example.com" || !strings.HasPrefix(user.Username, "Gina-") {
		t.Errorf("user = %+v, want suffixed username", user)
	}

	stored, err := s.Users().GetUserByEmail(context.Background(), "gina@example.com")
	if err != nil || stored.ID != user.ID {
		t.Errorf("stored user = %+v, err %v", stored, err)
	}
}

func TestCreateGoogleUser_EmailTakenConcurrently(t *testing.T) {
	s := inmemory.NewStore()
	existing := &domain.User{ID: "u1", Username: "gina-first", Email: "gina@example.com"}
	if err := s.Users().CreateUser(context.Background(), existing); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	boot := bootstrap.New(s, notify.NewLogNotifier(zerolog.Nop()), nil, zerolog.Nop())
	h := NewAuthHandler(s.Users(), nil, nil, boot, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", nil)
	user, err := h.createGoogleUser(req, &auth.GoogleIdentity{Email: "gina@example.com", Name: "Gina"})
	if err != nil {
		t.Fatalf("createGoogleUser failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user id = %q, want the existing account", user.ID)
	}
}
