// Package mongo implements the store interfaces on MongoDB.
//
// Each collection has a repository type holding the shared database
// handle; the repository methods delegate to the *WithDB functions in the
// matching _ops.go file so that commands can run single operations without
// constructing a full Store.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dvloznov/polarix/internal/store"
)

// Collection names.
const (
	usersCollection        = "users"
	profilesCollection     = "profiles"
	categoriesCollection   = "categories"
	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
	sectionsCollection     = "sections"
)

// Store is the MongoDB-backed store.Store. It owns one client shared by
// every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, verifies the connection with a ping and returns a
// Store bound to the database dbName.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("Connect: creating client: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("Connect: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client != nil {
		return s.client.Disconnect(ctx)
	}
	return nil
}

// Database exposes the underlying handle for maintenance commands.
func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Users() store.UserRepository {
	return &MongoUserRepository{db: s.db}
}

func (s *Store) Profiles() store.ProfileRepository {
	return &MongoProfileRepository{db: s.db}
}

func (s *Store) Categories() store.CategoryRepository {
	return &MongoCategoryRepository{db: s.db}
}

func (s *Store) Accounts() store.AccountRepository {
	return &MongoAccountRepository{db: s.db}
}

func (s *Store) Transactions() store.TransactionRepository {
	return &MongoTransactionRepository{db: s.db}
}

func (s *Store) Sections() store.SectionRepository {
	return &MongoSectionRepository{db: s.db}
}

// Ensure Store implements the store.Store interface.
var _ store.Store = (*Store)(nil)
