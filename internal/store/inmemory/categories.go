package inmemory

import (
	"context"
	"fmt"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

type categoryRepo struct{ s *Store }

func copyCategory(c *domain.Category) *domain.Category {
	categoryCopy := *c
	categoryCopy.Subcategories = append([]string(nil), c.Subcategories...)
	return &categoryCopy
}

func (r categoryRepo) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*domain.Category{}
	for _, c := range r.s.categories {
		if c.UserID == userID {
			result = append(result, copyCategory(c))
		}
	}
	return result, nil
}

func (r categoryRepo) InsertCategory(ctx context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.insertLocked(category)
}

func (r categoryRepo) insertLocked(category *domain.Category) error {
	for _, c := range r.s.categories {
		if c.ID == category.ID || (c.UserID == category.UserID && c.Name == category.Name) {
			return fmt.Errorf("InsertCategory: %q: %w", category.Name, store.ErrDuplicate)
		}
	}
	r.s.categories = append(r.s.categories, copyCategory(category))
	return nil
}

func (r categoryRepo) InsertCategories(ctx context.Context, categories []*domain.Category) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inserted := 0
	var firstErr error
	for _, c := range categories {
		if err := r.insertLocked(c); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		inserted++
	}
	if firstErr != nil {
		return inserted, fmt.Errorf("InsertCategories: %w", firstErr)
	}
	return inserted, nil
}

func (r categoryRepo) UpdateCategory(ctx context.Context, userID, id, name string, subcategories []string) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var target *domain.Category
	for _, c := range r.s.categories {
		if c.ID == id && c.UserID == userID {
			target = c
			continue
		}
		if c.UserID == userID && c.Name == name {
			return nil, fmt.Errorf("UpdateCategory: %q: %w", name, store.ErrDuplicate)
		}
	}
	if target == nil {
		return nil, store.ErrNotFound
	}

	target.Name = name
	target.Subcategories = append([]string(nil), subcategories...)
	return copyCategory(target), nil
}

func (r categoryRepo) DeleteCategory(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.categories, removed = removeWhere(r.s.categories, func(c *domain.Category) bool {
		return c.ID == id && c.UserID == userID
	})
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r categoryRepo) DeleteCategoriesByOwner(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.categories, _ = removeWhere(r.s.categories, func(c *domain.Category) bool { return c.UserID == userID })
	return nil
}
