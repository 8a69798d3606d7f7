package domain

// Category groups transactions and lists the subcategory names a user picks from.
// (Name, UserID) is unique.
type Category struct {
	ID            string   `json:"_id" bson:"_id"`
	Name          string   `json:"name" bson:"name"`
	Subcategories []string `json:"subcategories" bson:"subcategories"`
	UserID        string   `json:"userId" bson:"userId"`
}

// Account is a financial account such as Bank or Cash. (Name, UserID) is unique.
type Account struct {
	ID     string `json:"_id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	UserID string `json:"userId" bson:"userId"`
}
