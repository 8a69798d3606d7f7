package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/polarix/internal/domain"
)

// ListAccountsWithDB returns the accounts owned by userID.
func ListAccountsWithDB(ctx context.Context, db *mongo.Database, userID string) ([]*domain.Account, error) {
	cur, err := db.Collection(accountsCollection).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: find: %w", err)
	}

	accounts := []*domain.Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("ListAccounts: decoding: %w", err)
	}
	return accounts, nil
}

// InsertAccountWithDB inserts one account.
func InsertAccountWithDB(ctx context.Context, db *mongo.Database, account *domain.Account) error {
	_, err := db.Collection(accountsCollection).InsertOne(ctx, account)
	return translate("InsertAccount: insert", err)
}

// InsertAccountsWithDB inserts accounts as one unordered batch.
func InsertAccountsWithDB(ctx context.Context, db *mongo.Database, accounts []*domain.Account) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(accounts))
	for i, a := range accounts {
		docs[i] = a
	}

	_, err := db.Collection(accountsCollection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return insertManyCount("InsertAccounts", len(docs), err)
}

// UpdateAccountWithDB renames the owner's account.
func UpdateAccountWithDB(ctx context.Context, db *mongo.Database, userID, id, name string) (*domain.Account, error) {
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{"$set": bson.M{"name": name}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account domain.Account
	err := db.Collection(accountsCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&account)
	if err != nil {
		return nil, translate("UpdateAccount: find and update", err)
	}
	return &account, nil
}
