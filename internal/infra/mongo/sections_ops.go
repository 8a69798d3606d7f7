package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/polarix/internal/domain"
)

// FindSectionWithDB returns the section keyed by (userID, category, subcategory).
func FindSectionWithDB(ctx context.Context, db *mongo.Database, userID string, category domain.SectionCategory, subcategory string) (*domain.Section, error) {
	filter := bson.M{"userId": userID, "category": category, "subcategory": subcategory}

	var section domain.Section
	if err := db.Collection(sectionsCollection).FindOne(ctx, filter).Decode(&section); err != nil {
		return nil, translate("FindSection: find", err)
	}
	return &section, nil
}

// UpsertSectionTotalWithDB overwrites the total of the keyed section in a
// single round trip, creating the document when it does not exist.
func UpsertSectionTotalWithDB(ctx context.Context, db *mongo.Database, userID string, category domain.SectionCategory, subcategory string, total float64) error {
	filter := bson.M{"userId": userID, "category": category, "subcategory": subcategory}
	update := bson.M{
		"$set":         bson.M{"total": total},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}

	_, err := db.Collection(sectionsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return translate("UpsertSectionTotal: update", err)
}
