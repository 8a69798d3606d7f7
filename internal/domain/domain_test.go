package domain

import (
	"reflect"
	"testing"
)

func TestSectionCategory_Valid(t *testing.T) {
	for _, c := range SectionCategories {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []SectionCategory{"", "income", "Savings"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestProfile_MissingFields(t *testing.T) {
	full := Profile{
		FirstName: "Alice", LastName: "Liddell", Gender: "female", MaritalStatus: "single",
		DateOfBirth: "1990-01-01", Occupation: "engineer", PhoneNumber: "555-0100", City: "Oxford",
		Email: "alice@example.com", IncomeStability: "stable", InvestmentPercentage: "20", RiskAppetite: "medium",
	}
	if missing := full.MissingFields(); len(missing) != 0 {
		t.Errorf("complete profile reports missing %v", missing)
	}

	partial := full
	partial.City = ""
	partial.FirstName = ""
	partial.MiddleName = ""
	if got, want := partial.MissingFields(), []string{"firstName", "city"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestDefaults(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 5 {
		t.Fatalf("got %d default categories, want 5", len(cats))
	}
	for i, c := range cats {
		if SectionCategory(c.Name) != SectionCategories[i] {
			t.Errorf("default category %d = %q, want %q", i, c.Name, SectionCategories[i])
		}
		if len(c.Subcategories) == 0 {
			t.Errorf("%s has no subcategories", c.Name)
		}
	}

	// Callers get their own copy.
	cats[0].Name = "changed"
	if DefaultCategories()[0].Name != "Income" {
		t.Error("DefaultCategories shares state between calls")
	}

	if got := DefaultAccountNames(); !reflect.DeepEqual(got, []string{"Bank", "Cash", "Credit Card", "Other"}) {
		t.Errorf("DefaultAccountNames() = %v", got)
	}
}
