package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/polarix/internal/store"
)

// deleteOwned removes the document with the given id from collection, but
// only when it belongs to userID.
func deleteOwned(ctx context.Context, db *mongo.Database, collection, userID, id string) error {
	res, err := db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// deleteByOwner removes every document in collection owned by userID.
func deleteByOwner(ctx context.Context, db *mongo.Database, collection, userID string) error {
	if _, err := db.Collection(collection).DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("delete %s by owner: %w", collection, err)
	}
	return nil
}
