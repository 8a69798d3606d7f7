package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
	"github.com/dvloznov/polarix/internal/store/inmemory"
)

// mockNotifier records calls and returns err.
type mockNotifier struct {
	err   error
	calls []string
}

func (m *mockNotifier) SendWelcome(ctx context.Context, email, username string) error {
	m.calls = append(m.calls, email)
	return m.err
}

// mockScheduler records scheduled user ids.
type mockScheduler struct {
	userIDs []string
}

func (m *mockScheduler) ScheduleExport(ctx context.Context, userID string) error {
	m.userIDs = append(m.userIDs, userID)
	return nil
}

func newUser(t *testing.T, s *inmemory.Store) *domain.User {
	t.Helper()
	u := &domain.User{ID: "u1", Username: "alice", Email: "a@x.io"}
	if err := s.Users().CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func TestRun_SeedsDefaultsAndNotifies(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewStore()
	user := newUser(t, s)
	notifier := &mockNotifier{}
	scheduler := &mockScheduler{}

	res, err := New(s, notifier, scheduler, zerolog.Nop()).Run(ctx, user)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.CategoriesAdded != 5 || res.AccountsAdded != 4 {
		t.Errorf("added %d categories, %d accounts; want 5, 4", res.CategoriesAdded, res.AccountsAdded)
	}
	if res.EmailStatus() != "sent" {
		t.Errorf("EmailStatus() = %q, want sent", res.EmailStatus())
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != "a@x.io" {
		t.Errorf("notifier calls = %v", notifier.calls)
	}
	if len(scheduler.userIDs) != 1 || scheduler.userIDs[0] != "u1" {
		t.Errorf("scheduled exports = %v", scheduler.userIDs)
	}

	stored, _ := s.Users().GetUserByID(ctx, "u1")
	if !stored.HasReceivedEmail {
		t.Error("expected hasReceivedEmail to be set")
	}

	categories, _ := s.Categories().ListCategories(ctx, "u1")
	want := map[string]int{"Income": 3, "Expense": 3, "Transfer": 2, "Asset": 2, "Liability": 2}
	for _, c := range categories {
		if want[c.Name] != len(c.Subcategories) {
			t.Errorf("category %s has %d subcategories, want %d", c.Name, len(c.Subcategories), want[c.Name])
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewStore()
	b := New(s, &mockNotifier{}, nil, zerolog.Nop())

	if _, _, err := b.Seed(ctx, "u1"); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}
	cats, accs, err := b.Seed(ctx, "u1")
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if cats != 0 || accs != 0 {
		t.Errorf("second Seed added %d categories, %d accounts; want 0, 0", cats, accs)
	}

	categories, _ := s.Categories().ListCategories(ctx, "u1")
	accounts, _ := s.Accounts().ListAccounts(ctx, "u1")
	if len(categories) != 5 || len(accounts) != 4 {
		t.Errorf("have %d categories, %d accounts; want 5, 4", len(categories), len(accounts))
	}
}

func TestSeed_SkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewStore()
	_ = s.Categories().InsertCategory(ctx, &domain.Category{ID: "c0", Name: "Income", Subcategories: []string{"Bonus"}, UserID: "u1"})
	_ = s.Accounts().InsertAccount(ctx, &domain.Account{ID: "a0", Name: "Cash", UserID: "u1"})

	cats, accs, err := New(s, &mockNotifier{}, nil, zerolog.Nop()).Seed(ctx, "u1")
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if cats != 4 || accs != 3 {
		t.Errorf("added %d categories, %d accounts; want 4, 3", cats, accs)
	}

	categories, _ := s.Categories().ListCategories(ctx, "u1")
	for _, c := range categories {
		if c.Name == "Income" && (len(c.Subcategories) != 1 || c.Subcategories[0] != "Bonus") {
			t.Errorf("pre-existing category was overwritten: %+v", c)
		}
	}
}

// staleStore hides existing categories and accounts from List calls, the
// way a concurrent seed looks between the read and the insert.
type staleStore struct {
	*inmemory.Store
}

func (s staleStore) Categories() store.CategoryRepository {
	return staleCategories{s.Store.Categories()}
}

func (s staleStore) Accounts() store.AccountRepository {
	return staleAccounts{s.Store.Accounts()}
}

type staleCategories struct{ store.CategoryRepository }

func (staleCategories) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	return nil, nil
}

type staleAccounts struct{ store.AccountRepository }

func (staleAccounts) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return nil, nil
}

func TestSeed_ConcurrentInsertCollision(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewStore()
	_ = s.Categories().InsertCategory(ctx, &domain.Category{ID: "c0", Name: "Income", UserID: "u1"})
	_ = s.Accounts().InsertAccount(ctx, &domain.Account{ID: "a0", Name: "Cash", UserID: "u1"})

	cats, accs, err := New(staleStore{s}, &mockNotifier{}, nil, zerolog.Nop()).Seed(ctx, "u1")
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if cats != 4 || accs != 3 {
		t.Errorf("added %d categories, %d accounts; want 4, 3", cats, accs)
	}

	categories, _ := s.Categories().ListCategories(ctx, "u1")
	accounts, _ := s.Accounts().ListAccounts(ctx, "u1")
	if len(categories) != 5 || len(accounts) != 4 {
		t.Errorf("have %d categories, %d accounts; want 5, 4", len(categories), len(accounts))
	}
}

func TestRun_NotificationFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	s := inmemory.NewStore()
	user := newUser(t, s)

	res, err := New(s, &mockNotifier{err: errors.New("smtp down")}, nil, zerolog.Nop()).Run(ctx, user)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.EmailStatus() != "failed" {
		t.Errorf("EmailStatus() = %q, want failed", res.EmailStatus())
	}

	stored, _ := s.Users().GetUserByID(ctx, "u1")
	if stored.HasReceivedEmail {
		t.Error("hasReceivedEmail must stay false when notification fails")
	}
	accounts, _ := s.Accounts().ListAccounts(ctx, "u1")
	if len(accounts) != 4 {
		t.Errorf("len(accounts) = %d, want 4", len(accounts))
	}
}
