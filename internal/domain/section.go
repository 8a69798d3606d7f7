package domain

// SectionCategory is the fixed set of top-level groups a section total belongs to.
type SectionCategory string

const (
	SectionIncome    SectionCategory = "Income"
	SectionExpense   SectionCategory = "Expense"
	SectionTransfer  SectionCategory = "Transfer"
	SectionAsset     SectionCategory = "Asset"
	SectionLiability SectionCategory = "Liability"
)

// SectionCategories lists every valid SectionCategory in display order.
var SectionCategories = []SectionCategory{
	SectionIncome,
	SectionExpense,
	SectionTransfer,
	SectionAsset,
	SectionLiability,
}

// Valid reports whether c is one of SectionCategories.
func (c SectionCategory) Valid() bool {
	for _, known := range SectionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Section is the materialized running total for one (user, category, subcategory).
// It is written by callers with the full recomputed total; it is not derived
// from stored transactions.
type Section struct {
	ID          string          `json:"_id" bson:"_id"`
	UserID      string          `json:"userId" bson:"userId"`
	Category    SectionCategory `json:"category" bson:"category"`
	Subcategory string          `json:"subcategory" bson:"subcategory"`
	Total       float64         `json:"total" bson:"total"`
}

// SubcategoryTotal is one entry of an aggregation request.
type SubcategoryTotal struct {
	Subcategory string
	Total       float64
}
