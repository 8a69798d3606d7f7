package domain

import (
	"time"
)

// Transaction is one bookkeeping entry owned by a user.
// Category, Subcategory and Account hold names, not ids: renaming a
// category or account does not touch existing transactions.
type Transaction struct {
	ID          string    `json:"_id" bson:"_id"`
	UserID      string    `json:"userId" bson:"userId"`
	Amount      float64   `json:"amount" bson:"amount"`
	Date        time.Time `json:"date" bson:"date"`
	Description string    `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"`
	Subcategory string    `json:"subcategory" bson:"subcategory"`
	Account     string    `json:"account" bson:"account"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
