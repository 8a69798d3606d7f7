package sections

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
	"github.com/dvloznov/polarix/internal/store/inmemory"
)

func newAggregator(t *testing.T) (*Aggregator, *inmemory.Store) {
	t.Helper()
	s := inmemory.NewStore()
	if err := s.Users().CreateUser(context.Background(), &domain.User{ID: "u1", Username: "alice", Email: "a@x.io"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return NewAggregator(s.Users(), s.Sections(), zerolog.Nop()), s
}

func TestUpsert_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	agg, _ := newAggregator(t)

	if err := agg.Upsert(ctx, "a@x.io", domain.SectionIncome, []domain.SubcategoryTotal{{Subcategory: "Salary", Total: 10}}); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := agg.Upsert(ctx, "a@x.io", domain.SectionIncome, []domain.SubcategoryTotal{{Subcategory: "Salary", Total: 25}}); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := agg.Get(ctx, "a@x.io", domain.SectionIncome, "Salary")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Total != 25 {
		t.Errorf("Total = %v, want 25", got.Total)
	}
}

func TestGet_UnwrittenSectionIsZero(t *testing.T) {
	agg, _ := newAggregator(t)

	got, err := agg.Get(context.Background(), "a@x.io", domain.SectionExpense, "Rent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Total != 0 || got.ID != "" {
		t.Errorf("unexpected section: %+v", got)
	}
}

func TestUpsert_Errors(t *testing.T) {
	agg, _ := newAggregator(t)

	tests := []struct {
		name     string
		email    string
		category domain.SectionCategory
		want     error
	}{
		{"unknown user", "nobody@x.io", domain.SectionIncome, apperrors.NotFound("")},
		{"invalid category", "a@x.io", "Savings", apperrors.Validation("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := agg.Upsert(context.Background(), tt.email, tt.category, []domain.SubcategoryTotal{{Subcategory: "X", Total: 1}})
			if !errors.Is(err, tt.want) {
				t.Errorf("Upsert() error = %v, want kind %v", err, apperrors.KindOf(tt.want))
			}
		})
	}
}

// failingSections fails on the nth upsert.
type failingSections struct {
	store.SectionRepository
	failAt  int
	written []string
}

func (f *failingSections) UpsertSectionTotal(ctx context.Context, userID string, category domain.SectionCategory, subcategory string, total float64) error {
	if len(f.written) == f.failAt {
		return errors.New("write failed")
	}
	f.written = append(f.written, subcategory)
	return nil
}

func TestUpsert_AbortsOnFirstFailure(t *testing.T) {
	s := inmemory.NewStore()
	_ = s.Users().CreateUser(context.Background(), &domain.User{ID: "u1", Username: "alice", Email: "a@x.io"})
	fs := &failingSections{failAt: 1}
	agg := NewAggregator(s.Users(), fs, zerolog.Nop())

	err := agg.Upsert(context.Background(), "a@x.io", domain.SectionExpense, []domain.SubcategoryTotal{
		{Subcategory: "Rent", Total: 1},
		{Subcategory: "Groceries", Total: 2},
		{Subcategory: "Utilities", Total: 3},
	})
	if apperrors.HTTPStatus(err) != 500 {
		t.Errorf("Upsert() error = %v, want internal", err)
	}
	if len(fs.written) != 1 || fs.written[0] != "Rent" {
		t.Errorf("written = %v, want [Rent]", fs.written)
	}
}

func TestTotals_PreservesOrder(t *testing.T) {
	var totals Totals
	input := `{"Utilities": 30, "Rent": "1200.50", "Groceries": 0}`
	if err := json.Unmarshal([]byte(input), &totals); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := []domain.SubcategoryTotal{
		{Subcategory: "Utilities", Total: 30},
		{Subcategory: "Rent", Total: 1200.5},
		{Subcategory: "Groceries", Total: 0},
	}
	if len(totals) != len(want) {
		t.Fatalf("len(totals) = %d, want %d", len(totals), len(want))
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("totals[%d] = %+v, want %+v", i, totals[i], want[i])
		}
	}
}

func TestTotals_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1, 2]`},
		{"non-numeric string", `{"Rent": "a lot"}`},
		{"boolean", `{"Rent": true}`},
		{"nested object", `{"Rent": {"x": 1}}`},
		{"NaN string", `{"Salary": "NaN"}`},
		{"infinity string", `{"Salary": "Infinity"}`},
		{"negative infinity string", `{"Salary": "-Inf"}`},
		{"overflowing number", `{"Salary": 1e400}`},
		{"empty subcategory", `{"": 5}`},
		{"blank subcategory", `{"  ": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var totals Totals
			if err := json.Unmarshal([]byte(tt.input), &totals); err == nil {
				t.Errorf("expected error for %s", tt.input)
			}
		})
	}
}
