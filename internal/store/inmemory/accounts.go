package inmemory

import (
	"context"
	"fmt"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

type accountRepo struct{ s *Store }

func (r accountRepo) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*domain.Account{}
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			accountCopy := *a
			result = append(result, &accountCopy)
		}
	}
	return result, nil
}

func (r accountRepo) InsertAccount(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.insertLocked(account)
}

func (r accountRepo) insertLocked(account *domain.Account) error {
	for _, a := range r.s.accounts {
		if a.ID == account.ID || (a.UserID == account.UserID && a.Name == account.Name) {
			return fmt.Errorf("InsertAccount: %q: %w", account.Name, store.ErrDuplicate)
		}
	}
	accountCopy := *account
	r.s.accounts = append(r.s.accounts, &accountCopy)
	return nil
}

func (r accountRepo) InsertAccounts(ctx context.Context, accounts []*domain.Account) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inserted := 0
	var firstErr error
	for _, a := range accounts {
		if err := r.insertLocked(a); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		inserted++
	}
	if firstErr != nil {
		return inserted, fmt.Errorf("InsertAccounts: %w", firstErr)
	}
	return inserted, nil
}

func (r accountRepo) UpdateAccount(ctx context.Context, userID, id, name string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var target *domain.Account
	for _, a := range r.s.accounts {
		if a.ID == id && a.UserID == userID {
			target = a
			continue
		}
		if a.UserID == userID && a.Name == name {
			return nil, fmt.Errorf("UpdateAccount: %q: %w", name, store.ErrDuplicate)
		}
	}
	if target == nil {
		return nil, store.ErrNotFound
	}

	target.Name = name
	accountCopy := *target
	return &accountCopy, nil
}

func (r accountRepo) DeleteAccount(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.accounts, removed = removeWhere(r.s.accounts, func(a *domain.Account) bool {
		return a.ID == id && a.UserID == userID
	})
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r accountRepo) DeleteAccountsByOwner(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.accounts, _ = removeWhere(r.s.accounts, func(a *domain.Account) bool { return a.UserID == userID })
	return nil
}
