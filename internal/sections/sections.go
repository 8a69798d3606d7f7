// Package sections maintains the per-user running totals keyed by
// category and subcategory.
package sections

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// Aggregator writes and reads section totals for the user identified by email.
type Aggregator struct {
	users    store.UserRepository
	sections store.SectionRepository
	log      zerolog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(users store.UserRepository, sections store.SectionRepository, log zerolog.Logger) *Aggregator {
	return &Aggregator{users: users, sections: sections, log: log}
}

// Upsert overwrites the total of each (category, subcategory) in totals,
// in order, one write per entry. The first failed write stops the run;
// entries already written stay written.
func (a *Aggregator) Upsert(ctx context.Context, email string, category domain.SectionCategory, totals []domain.SubcategoryTotal) error {
	if !category.Valid() {
		return apperrors.Validation(fmt.Sprintf("Invalid category: %s", category))
	}

	user, err := a.lookup(ctx, email)
	if err != nil {
		return err
	}

	for i, t := range totals {
		if err := a.sections.UpsertSectionTotal(ctx, user.ID, category, t.Subcategory, t.Total); err != nil {
			a.log.Error().Err(err).
				Str("user_id", user.ID).
				Str("category", string(category)).
				Str("subcategory", t.Subcategory).
				Int("written", i).
				Msg("Section upsert aborted")
			return apperrors.Internal("Failed to update section", err)
		}
	}

	a.log.Debug().Str("user_id", user.ID).Str("category", string(category)).Int("count", len(totals)).Msg("Sections updated")
	return nil
}

// Get returns the section for the user identified by email. A section
// that was never written is returned with a zero total and no id.
func (a *Aggregator) Get(ctx context.Context, email string, category domain.SectionCategory, subcategory string) (*domain.Section, error) {
	user, err := a.lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	section, err := a.sections.FindSection(ctx, user.ID, category, subcategory)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.Section{UserID: user.ID, Category: category, Subcategory: subcategory}, nil
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch section", err)
	}
	return section, nil
}

func (a *Aggregator) lookup(ctx context.Context, email string) (*domain.User, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	return user, nil
}
