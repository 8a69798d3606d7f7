package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/polarix/internal/domain"
)

// ListCategoriesWithDB returns the categories owned by userID.
func ListCategoriesWithDB(ctx context.Context, db *mongo.Database, userID string) ([]*domain.Category, error) {
	cur, err := db.Collection(categoriesCollection).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("ListCategories: find: %w", err)
	}

	categories := []*domain.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("ListCategories: decoding: %w", err)
	}
	return categories, nil
}

// InsertCategoryWithDB inserts one category.
func InsertCategoryWithDB(ctx context.Context, db *mongo.Database, category *domain.Category) error {
	_, err := db.Collection(categoriesCollection).InsertOne(ctx, category)
	return translate("InsertCategory: insert", err)
}

// InsertCategoriesWithDB inserts categories as one unordered batch. Rows
// that collide with the (userId, name) index are skipped by the server
// while the rest are written.
func InsertCategoriesWithDB(ctx context.Context, db *mongo.Database, categories []*domain.Category) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(categories))
	for i, c := range categories {
		docs[i] = c
	}

	_, err := db.Collection(categoriesCollection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return insertManyCount("InsertCategories", len(docs), err)
}

// UpdateCategoryWithDB sets name and subcategories on the owner's category
// and returns the updated document.
func UpdateCategoryWithDB(ctx context.Context, db *mongo.Database, userID, id, name string, subcategories []string) (*domain.Category, error) {
	if subcategories == nil {
		subcategories = []string{}
	}
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{"$set": bson.M{"name": name, "subcategories": subcategories}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category domain.Category
	err := db.Collection(categoriesCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&category)
	if err != nil {
		return nil, translate("UpdateCategory: find and update", err)
	}
	return &category, nil
}
