// Package bootstrap prepares a newly created user: it seeds the default
// categories and accounts, sends the welcome notification and schedules the
// user's transaction template.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/logger"
	"github.com/dvloznov/polarix/internal/notify"
	"github.com/dvloznov/polarix/internal/store"
)

// ExportScheduler queues generation of a user's transaction template.
type ExportScheduler interface {
	ScheduleExport(ctx context.Context, userID string) error
}

// Result reports what a bootstrap run did.
type Result struct {
	CategoriesAdded int
	AccountsAdded   int
	EmailSent       bool
}

// EmailStatus renders EmailSent the way the signup response reports it.
func (r Result) EmailStatus() string {
	if r.EmailSent {
		return "sent"
	}
	return "failed"
}

// Bootstrapper runs the bootstrap steps against a store.
type Bootstrapper struct {
	store    store.Store
	notifier notify.Notifier
	exports  ExportScheduler
	log      zerolog.Logger
}

// New creates a Bootstrapper. exports may be nil.
func New(s store.Store, notifier notify.Notifier, exports ExportScheduler, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{store: s, notifier: notifier, exports: exports, log: log}
}

// Run seeds defaults for user, then notifies and schedules the template
// export. Notification and scheduling failures are logged and never
// returned. The returned error is the seeding error, if any; the Result is
// meaningful either way.
func (b *Bootstrapper) Run(ctx context.Context, user *domain.User) (Result, error) {
	log := logger.WithUser(b.log, user.ID)

	var result Result
	var seedErr error

	result.CategoriesAdded, result.AccountsAdded, seedErr = b.Seed(ctx, user.ID)
	if seedErr != nil {
		log.Error().Err(seedErr).Msg("Seeding defaults failed")
	}

	if err := b.notifier.SendWelcome(ctx, user.Email, user.Username); err != nil {
		log.Warn().Err(err).Msg("Welcome notification failed")
	} else {
		result.EmailSent = true
		if err := b.store.Users().MarkNotified(ctx, user.ID); err != nil {
			log.Error().Err(err).Msg("Failed to record welcome notification")
		}
	}

	if b.exports != nil {
		if err := b.exports.ScheduleExport(ctx, user.ID); err != nil {
			log.Warn().Err(err).Msg("Failed to schedule template export")
		}
	}

	log.Info().
		Int("categories_added", result.CategoriesAdded).
		Int("accounts_added", result.AccountsAdded).
		Bool("email_sent", result.EmailSent).
		Msg("User bootstrapped")

	return result, seedErr
}

// Seed inserts the default categories and accounts the user does not
// already have, matched by name. Running it twice adds nothing the second
// time. Duplicate-key collisions from a concurrent seed are logged and
// ignored.
func (b *Bootstrapper) Seed(ctx context.Context, userID string) (categoriesAdded, accountsAdded int, err error) {
	categoriesAdded, err = b.seedCategories(ctx, userID)
	if err != nil {
		return categoriesAdded, 0, err
	}
	accountsAdded, err = b.seedAccounts(ctx, userID)
	return categoriesAdded, accountsAdded, err
}

func (b *Bootstrapper) seedCategories(ctx context.Context, userID string) (int, error) {
	existing, err := b.store.Categories().ListCategories(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("seedCategories: listing existing: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}

	var missing []*domain.Category
	for _, def := range domain.DefaultCategories() {
		if have[def.Name] {
			continue
		}
		missing = append(missing, &domain.Category{
			ID:            uuid.NewString(),
			Name:          def.Name,
			Subcategories: def.Subcategories,
			UserID:        userID,
		})
	}
	if len(missing) == 0 {
		b.log.Debug().Str("user_id", userID).Msg("No default categories to insert")
		return 0, nil
	}

	n, err := b.store.Categories().InsertCategories(ctx, missing)
	if errors.Is(err, store.ErrDuplicate) {
		b.log.Warn().Err(err).Str("user_id", userID).Msg("Some default categories already existed")
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("seedCategories: inserting: %w", err)
	}
	return n, nil
}

func (b *Bootstrapper) seedAccounts(ctx context.Context, userID string) (int, error) {
	existing, err := b.store.Accounts().ListAccounts(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("seedAccounts: listing existing: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.Name] = true
	}

	var missing []*domain.Account
	for _, name := range domain.DefaultAccountNames() {
		if have[name] {
			continue
		}
		missing = append(missing, &domain.Account{ID: uuid.NewString(), Name: name, UserID: userID})
	}
	if len(missing) == 0 {
		b.log.Debug().Str("user_id", userID).Msg("No default accounts to insert")
		return 0, nil
	}

	n, err := b.store.Accounts().InsertAccounts(ctx, missing)
	if errors.Is(err, store.ErrDuplicate) {
		b.log.Warn().Err(err).Str("user_id", userID).Msg("Some default accounts already existed")
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("seedAccounts: inserting: %w", err)
	}
	return n, nil
}
