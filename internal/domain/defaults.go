package domain

// DefaultCategory is a category seeded for every new user.
type DefaultCategory struct {
	Name          string
	Subcategories []string
}

// DefaultCategories returns the categories every new user starts with.
// A fresh slice is returned on each call so callers may modify it.
func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{Name: string(SectionIncome), Subcategories: []string{"Salary", "Freelance", "Investments"}},
		{Name: string(SectionExpense), Subcategories: []string{"Rent", "Groceries", "Utilities"}},
		{Name: string(SectionTransfer), Subcategories: []string{"Bank Transfer", "Cash Withdrawal"}},
		{Name: string(SectionAsset), Subcategories: []string{"Real Estate", "Stocks"}},
		{Name: string(SectionLiability), Subcategories: []string{"Loan", "Credit Card Debt"}},
	}
}

// DefaultAccountNames returns the financial accounts every new user starts with.
func DefaultAccountNames() []string {
	return []string{"Bank", "Cash", "Credit Card", "Other"}
}
