package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec describes one index the application relies on.
type IndexSpec struct {
	Collection string
	Name       string
	Keys       bson.D
	Unique     bool
}

// Indexes lists every index. The unique ones carry the uniqueness
// invariants of the data model; nothing else enforces them.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{Collection: usersCollection, Name: "uniq_username", Keys: bson.D{{Key: "username", Value: 1}}, Unique: true},
		{Collection: usersCollection, Name: "uniq_email", Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
		{Collection: profilesCollection, Name: "uniq_email", Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
		{Collection: categoriesCollection, Name: "uniq_owner_name", Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}}, Unique: true},
		{Collection: accountsCollection, Name: "uniq_owner_name", Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}}, Unique: true},
		{Collection: sectionsCollection, Name: "uniq_owner_section", Keys: bson.D{{Key: "userId", Value: 1}, {Key: "category", Value: 1}, {Key: "subcategory", Value: 1}}, Unique: true},
		{Collection: transactionsCollection, Name: "owner_created", Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
}

// EnsureIndexes creates every index in Indexes. Creating an index that
// already exists with the same definition is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range Indexes() {
		model := mongo.IndexModel{
			Keys:    spec.Keys,
			Options: options.Index().SetName(spec.Name).SetUnique(spec.Unique),
		}
		if _, err := db.Collection(spec.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("EnsureIndexes: %s.%s: %w", spec.Collection, spec.Name, err)
		}
	}
	return nil
}
