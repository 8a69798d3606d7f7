package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// CreateUserWithDB inserts user. The unique indexes on username and email
// turn a collision into store.ErrDuplicate.
func CreateUserWithDB(ctx context.Context, db *mongo.Database, user *domain.User) error {
	_, err := db.Collection(usersCollection).InsertOne(ctx, user)
	return translate("CreateUser: insert", err)
}

// FindUserWithDB returns the user whose field equals value.
func FindUserWithDB(ctx context.Context, db *mongo.Database, field string, value any) (*domain.User, error) {
	var user domain.User
	err := db.Collection(usersCollection).FindOne(ctx, bson.M{field: value}).Decode(&user)
	if err != nil {
		return nil, translate(fmt.Sprintf("FindUser: by %s", field), err)
	}
	return &user, nil
}

// ListUsersWithDB returns every user.
func ListUsersWithDB(ctx context.Context, db *mongo.Database) ([]*domain.User, error) {
	cur, err := db.Collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("ListUsers: find: %w", err)
	}

	users := []*domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ListUsers: decoding: %w", err)
	}
	return users, nil
}

// UpdateUserIdentityWithDB sets username and email and returns the
// document after the update.
func UpdateUserIdentityWithDB(ctx context.Context, db *mongo.Database, id, username, email string) (*domain.User, error) {
	update := bson.M{"$set": bson.M{"username": username, "email": email}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := db.Collection(usersCollection).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		return nil, translate("UpdateUserIdentity: find and update", err)
	}
	return &user, nil
}

// SetUserFieldWithDB sets a single field on the user with the given id.
func SetUserFieldWithDB(ctx context.Context, db *mongo.Database, id, field string, value any) error {
	res, err := db.Collection(usersCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return translate(fmt.Sprintf("SetUserField: %s", field), err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteUserWithDB removes the user row. Dependents are not touched.
func DeleteUserWithDB(ctx context.Context, db *mongo.Database, id string) error {
	res, err := db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("DeleteUser: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
