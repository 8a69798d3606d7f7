package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// GetProfileByEmailWithDB returns the profile with the given email, whoever owns it.
func GetProfileByEmailWithDB(ctx context.Context, db *mongo.Database, email string) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.Collection(profilesCollection).FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err != nil {
		return nil, translate("GetProfileByEmail: find", err)
	}
	return &profile, nil
}

// CreateProfileWithDB inserts profile.
func CreateProfileWithDB(ctx context.Context, db *mongo.Database, profile *domain.Profile) error {
	_, err := db.Collection(profilesCollection).InsertOne(ctx, profile)
	return translate("CreateProfile: insert", err)
}

// ReplaceProfileWithDB replaces the document matching the profile's id and owner.
func ReplaceProfileWithDB(ctx context.Context, db *mongo.Database, profile *domain.Profile) error {
	filter := bson.M{"_id": profile.ID, "userId": profile.UserID}
	res, err := db.Collection(profilesCollection).ReplaceOne(ctx, filter, profile)
	if err != nil {
		return translate("ReplaceProfile: replace", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
