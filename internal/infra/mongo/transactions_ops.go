package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/polarix/internal/domain"
)

// ListTransactionsWithDB returns the owner's transactions, oldest first.
func ListTransactionsWithDB(ctx context.Context, db *mongo.Database, userID string) ([]*domain.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := db.Collection(transactionsCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: find: %w", err)
	}

	txs := []*domain.Transaction{}
	if err := cur.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("ListTransactions: decoding: %w", err)
	}
	return txs, nil
}

// GetTransactionWithDB returns the owner's transaction with the given id.
func GetTransactionWithDB(ctx context.Context, db *mongo.Database, userID, id string) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := db.Collection(transactionsCollection).FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&tx)
	if err != nil {
		return nil, translate("GetTransaction: find", err)
	}
	return &tx, nil
}

// InsertTransactionWithDB inserts one transaction.
func InsertTransactionWithDB(ctx context.Context, db *mongo.Database, tx *domain.Transaction) error {
	_, err := db.Collection(transactionsCollection).InsertOne(ctx, tx)
	return translate("InsertTransaction: insert", err)
}

// ReplaceTransactionWithDB overwrites the mutable fields of the owner's
// transaction. _id, userId and createdAt are left alone.
func ReplaceTransactionWithDB(ctx context.Context, db *mongo.Database, tx *domain.Transaction) (*domain.Transaction, error) {
	filter := bson.M{"_id": tx.ID, "userId": tx.UserID}
	update := bson.M{"$set": bson.M{
		"amount":      tx.Amount,
		"date":        tx.Date,
		"description": tx.Description,
		"category":    tx.Category,
		"subcategory": tx.Subcategory,
		"account":     tx.Account,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Transaction
	err := db.Collection(transactionsCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, translate("ReplaceTransaction: find and update", err)
	}
	return &updated, nil
}
