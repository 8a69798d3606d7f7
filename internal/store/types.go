// Package store declares the repository interfaces the services and
// handlers depend on. Implementations live in internal/infra/mongo and
// internal/store/inmemory.
package store

import (
	"context"
	"errors"

	"github.com/dvloznov/polarix/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches the lookup, including rows
	// that exist but belong to another owner.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("store: duplicate key")
)

// UserRepository provides an interface for user-related database operations.
type UserRepository interface {
	// CreateUser inserts a new user. Returns ErrDuplicate if the username or email is taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByID returns the user with the given id.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// GetUserByEmail returns the user with the given email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByUsername returns the user with the given username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers returns every user.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateUserIdentity sets username and email and returns the updated user.
	UpdateUserIdentity(ctx context.Context, id, username, email string) (*domain.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// MarkNotified sets the welcome-notification flag.
	MarkNotified(ctx context.Context, id string) error

	// DeleteUser removes the user row only.
	DeleteUser(ctx context.Context, id string) error
}

// ProfileRepository provides an interface for profile-related database operations.
type ProfileRepository interface {
	// GetProfileByEmail returns the profile with the given email regardless of owner.
	GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// CreateProfile inserts a new profile. Returns ErrDuplicate if the email is taken.
	CreateProfile(ctx context.Context, profile *domain.Profile) error

	// ReplaceProfile overwrites the profile with the same id and owner.
	ReplaceProfile(ctx context.Context, profile *domain.Profile) error

	// DeleteProfilesByOwner removes every profile owned by userID.
	DeleteProfilesByOwner(ctx context.Context, userID string) error
}

// CategoryRepository provides an interface for category-related database operations.
type CategoryRepository interface {
	// ListCategories returns the categories owned by userID.
	ListCategories(ctx context.Context, userID string) ([]*domain.Category, error)

	// InsertCategory inserts one category. Returns ErrDuplicate on a (name, owner) collision.
	InsertCategory(ctx context.Context, category *domain.Category) error

	// InsertCategories inserts a batch without ordering: every row that can be
	// inserted is inserted. Returns the number inserted and, if any row
	// collided, an error wrapping ErrDuplicate.
	InsertCategories(ctx context.Context, categories []*domain.Category) (int, error)

	// UpdateCategory sets name and subcategories on the owner's category.
	UpdateCategory(ctx context.Context, userID, id, name string, subcategories []string) (*domain.Category, error)

	// DeleteCategory removes the owner's category.
	DeleteCategory(ctx context.Context, userID, id string) error

	// DeleteCategoriesByOwner removes every category owned by userID.
	DeleteCategoriesByOwner(ctx context.Context, userID string) error
}

// AccountRepository provides an interface for account-related database operations.
type AccountRepository interface {
	// ListAccounts returns the accounts owned by userID.
	ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error)

	// InsertAccount inserts one account. Returns ErrDuplicate on a (name, owner) collision.
	InsertAccount(ctx context.Context, account *domain.Account) error

	// InsertAccounts inserts a batch without ordering, like InsertCategories.
	InsertAccounts(ctx context.Context, accounts []*domain.Account) (int, error)

	// UpdateAccount renames the owner's account.
	UpdateAccount(ctx context.Context, userID, id, name string) (*domain.Account, error)

	// DeleteAccount removes the owner's account.
	DeleteAccount(ctx context.Context, userID, id string) error

	// DeleteAccountsByOwner removes every account owned by userID.
	DeleteAccountsByOwner(ctx context.Context, userID string) error
}

// TransactionRepository provides an interface for transaction-related database operations.
type TransactionRepository interface {
	// ListTransactions returns the transactions owned by userID.
	ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// GetTransaction returns the owner's transaction.
	GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error)

	// InsertTransaction inserts one transaction.
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error

	// ReplaceTransaction overwrites the mutable fields of the owner's transaction
	// and returns the stored result. ID, UserID and CreatedAt are kept.
	ReplaceTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction removes the owner's transaction.
	DeleteTransaction(ctx context.Context, userID, id string) error

	// DeleteTransactionsByOwner removes every transaction owned by userID.
	DeleteTransactionsByOwner(ctx context.Context, userID string) error
}

// SectionRepository provides an interface for section-total operations.
type SectionRepository interface {
	// FindSection returns the section for (userID, category, subcategory).
	FindSection(ctx context.Context, userID string, category domain.SectionCategory, subcategory string) (*domain.Section, error)

	// UpsertSectionTotal sets the total of the keyed section, creating it if absent.
	// One round trip; last writer wins.
	UpsertSectionTotal(ctx context.Context, userID string, category domain.SectionCategory, subcategory string, total float64) error

	// DeleteSectionsByOwner removes every section owned by userID.
	DeleteSectionsByOwner(ctx context.Context, userID string) error
}

// Store bundles every repository behind one handle with a single lifecycle.
type Store interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Categories() CategoryRepository
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Sections() SectionRepository

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
