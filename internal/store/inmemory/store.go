// Package inmemory is a mutex-guarded, process-local implementation of the
// store interfaces. It enforces the same unique constraints as the MongoDB
// indexes and is used for development (STORE_BACKEND=memory) and tests.
// Data is lost on restart.
package inmemory

import (
	"context"
	"sync"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// Store holds every collection in memory. Rows are kept in insertion order
// and copies are handed out so callers never alias stored state.
type Store struct {
	mu           sync.RWMutex
	users        []*domain.User
	profiles     []*domain.Profile
	categories   []*domain.Category
	accounts     []*domain.Account
	transactions []*domain.Transaction
	sections     []*domain.Section
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() store.UserRepository               { return userRepo{s} }
func (s *Store) Profiles() store.ProfileRepository         { return profileRepo{s} }
func (s *Store) Categories() store.CategoryRepository      { return categoryRepo{s} }
func (s *Store) Accounts() store.AccountRepository         { return accountRepo{s} }
func (s *Store) Transactions() store.TransactionRepository { return transactionRepo{s} }
func (s *Store) Sections() store.SectionRepository         { return sectionRepo{s} }

// Close implements store.Store. There is nothing to release.
func (s *Store) Close(ctx context.Context) error {
	return nil
}

// removeWhere deletes, in place, every element for which drop returns true
// and reports how many were removed.
func removeWhere[T any](rows []*T, drop func(*T) bool) ([]*T, int) {
	kept := rows[:0]
	removed := 0
	for _, r := range rows {
		if drop(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	// Clear the tail so dropped rows can be collected.
	for i := len(kept); i < len(rows); i++ {
		rows[i] = nil
	}
	return kept, removed
}

// Ensure Store implements the store.Store interface.
var _ store.Store = (*Store)(nil)
