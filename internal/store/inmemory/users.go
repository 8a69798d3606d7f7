package inmemory

import (
	"context"
	"fmt"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

type userRepo struct{ s *Store }

func (r userRepo) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("user ID is required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == user.ID || u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("CreateUser: %w", store.ErrDuplicate)
		}
	}

	userCopy := *user
	r.s.users = append(r.s.users, &userCopy)
	return nil
}

func (r userRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r userRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r userRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r userRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			userCopy := *u
			return &userCopy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r userRepo) ListUsers(ctx context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		userCopy := *u
		result = append(result, &userCopy)
	}
	return result, nil
}

func (r userRepo) UpdateUserIdentity(ctx context.Context, id, username, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var target *domain.User
	for _, u := range r.s.users {
		if u.ID == id {
			target = u
			continue
		}
		if u.Username == username || u.Email == email {
			return nil, fmt.Errorf("UpdateUserIdentity: %w", store.ErrDuplicate)
		}
	}
	if target == nil {
		return nil, store.ErrNotFound
	}

	target.Username = username
	target.Email = email
	userCopy := *target
	return &userCopy, nil
}

func (r userRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.update(id, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (r userRepo) MarkNotified(ctx context.Context, id string) error {
	return r.update(id, func(u *domain.User) { u.HasReceivedEmail = true })
}

func (r userRepo) update(id string, apply func(*domain.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == id {
			apply(u)
			return nil
		}
	}
	return store.ErrNotFound
}

func (r userRepo) DeleteUser(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.users, removed = removeWhere(r.s.users, func(u *domain.User) bool { return u.ID == id })
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}
