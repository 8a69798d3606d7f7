package inmemory

import (
	"context"
	"fmt"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

type profileRepo struct{ s *Store }

func (r profileRepo) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.profiles {
		if p.Email == email {
			profileCopy := *p
			return &profileCopy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r profileRepo) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.profiles {
		if p.ID == profile.ID || p.Email == profile.Email {
			return fmt.Errorf("CreateProfile: %w", store.ErrDuplicate)
		}
	}

	profileCopy := *profile
	r.s.profiles = append(r.s.profiles, &profileCopy)
	return nil
}

func (r profileRepo) ReplaceProfile(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := -1
	for i, p := range r.s.profiles {
		if p.ID == profile.ID && p.UserID == profile.UserID {
			idx = i
			continue
		}
		if p.Email == profile.Email {
			return fmt.Errorf("ReplaceProfile: %w", store.ErrDuplicate)
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}

	profileCopy := *profile
	r.s.profiles[idx] = &profileCopy
	return nil
}

func (r profileRepo) DeleteProfilesByOwner(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.profiles, _ = removeWhere(r.s.profiles, func(p *domain.Profile) bool { return p.UserID == userID })
	return nil
}
