package inmemory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

type sectionRepo struct{ s *Store }

func (r sectionRepo) FindSection(ctx context.Context, userID string, category domain.SectionCategory, subcategory string) (*domain.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sec := range r.s.sections {
		if sec.UserID == userID && sec.Category == category && sec.Subcategory == subcategory {
			sectionCopy := *sec
			return &sectionCopy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r sectionRepo) UpsertSectionTotal(ctx context.Context, userID string, category domain.SectionCategory, subcategory string, total float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sec := range r.s.sections {
		if sec.UserID == userID && sec.Category == category && sec.Subcategory == subcategory {
			sec.Total = total
			return nil
		}
	}

	r.s.sections = append(r.s.sections, &domain.Section{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    category,
		Subcategory: subcategory,
		Total:       total,
	})
	return nil
}

func (r sectionRepo) DeleteSectionsByOwner(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sections, _ = removeWhere(r.s.sections, func(sec *domain.Section) bool { return sec.UserID == userID })
	return nil
}
