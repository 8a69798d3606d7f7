package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/polarix/internal/domain"
)

// MongoUserRepository is the concrete implementation of store.UserRepository.
type MongoUserRepository struct {
	db *mongo.Database
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return CreateUserWithDB(ctx, r.db, user)
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return FindUserWithDB(ctx, r.db, "_id", id)
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return FindUserWithDB(ctx, r.db, "email", email)
}

func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return FindUserWithDB(ctx, r.db, "username", username)
}

func (r *MongoUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return ListUsersWithDB(ctx, r.db)
}

func (r *MongoUserRepository) UpdateUserIdentity(ctx context.Context, id, username, email string) (*domain.User, error) {
	return UpdateUserIdentityWithDB(ctx, r.db, id, username, email)
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return SetUserFieldWithDB(ctx, r.db, id, "password", passwordHash)
}

func (r *MongoUserRepository) MarkNotified(ctx context.Context, id string) error {
	return SetUserFieldWithDB(ctx, r.db, id, "hasReceivedEmail", true)
}

func (r *MongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	return DeleteUserWithDB(ctx, r.db, id)
}

// MongoProfileRepository is the concrete implementation of store.ProfileRepository.
type MongoProfileRepository struct {
	db *mongo.Database
}

func (r *MongoProfileRepository) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return GetProfileByEmailWithDB(ctx, r.db, email)
}

func (r *MongoProfileRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	return CreateProfileWithDB(ctx, r.db, profile)
}

func (r *MongoProfileRepository) ReplaceProfile(ctx context.Context, profile *domain.Profile) error {
	return ReplaceProfileWithDB(ctx, r.db, profile)
}

func (r *MongoProfileRepository) DeleteProfilesByOwner(ctx context.Context, userID string) error {
	return deleteByOwner(ctx, r.db, profilesCollection, userID)
}

// MongoCategoryRepository is the concrete implementation of store.CategoryRepository.
type MongoCategoryRepository struct {
	db *mongo.Database
}

func (r *MongoCategoryRepository) ListCategories(ctx context.Context, userID string) ([]*domain.Category, error) {
	return ListCategoriesWithDB(ctx, r.db, userID)
}

func (r *MongoCategoryRepository) InsertCategory(ctx context.Context, category *domain.Category) error {
	return InsertCategoryWithDB(ctx, r.db, category)
}

func (r *MongoCategoryRepository) InsertCategories(ctx context.Context, categories []*domain.Category) (int, error) {
	return InsertCategoriesWithDB(ctx, r.db, categories)
}

func (r *MongoCategoryRepository) UpdateCategory(ctx context.Context, userID, id, name string, subcategories []string) (*domain.Category, error) {
	return UpdateCategoryWithDB(ctx, r.db, userID, id, name, subcategories)
}

func (r *MongoCategoryRepository) DeleteCategory(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, categoriesCollection, userID, id)
}

func (r *MongoCategoryRepository) DeleteCategoriesByOwner(ctx context.Context, userID string) error {
	return deleteByOwner(ctx, r.db, categoriesCollection, userID)
}

// MongoAccountRepository is the concrete implementation of store.AccountRepository.
type MongoAccountRepository struct {
	db *mongo.Database
}

func (r *MongoAccountRepository) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return ListAccountsWithDB(ctx, r.db, userID)
}

func (r *MongoAccountRepository) InsertAccount(ctx context.Context, account *domain.Account) error {
	return InsertAccountWithDB(ctx, r.db, account)
}

func (r *MongoAccountRepository) InsertAccounts(ctx context.Context, accounts []*domain.Account) (int, error) {
	return InsertAccountsWithDB(ctx, r.db, accounts)
}

func (r *MongoAccountRepository) UpdateAccount(ctx context.Context, userID, id, name string) (*domain.Account, error) {
	return UpdateAccountWithDB(ctx, r.db, userID, id, name)
}

func (r *MongoAccountRepository) DeleteAccount(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, accountsCollection, userID, id)
}

func (r *MongoAccountRepository) DeleteAccountsByOwner(ctx context.Context, userID string) error {
	return deleteByOwner(ctx, r.db, accountsCollection, userID)
}

// MongoTransactionRepository is the concrete implementation of store.TransactionRepository.
type MongoTransactionRepository struct {
	db *mongo.Database
}

func (r *MongoTransactionRepository) ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return ListTransactionsWithDB(ctx, r.db, userID)
}

func (r *MongoTransactionRepository) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	return GetTransactionWithDB(ctx, r.db, userID, id)
}

func (r *MongoTransactionRepository) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	return InsertTransactionWithDB(ctx, r.db, tx)
}

func (r *MongoTransactionRepository) ReplaceTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	return ReplaceTransactionWithDB(ctx, r.db, tx)
}

func (r *MongoTransactionRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.db, transactionsCollection, userID, id)
}

func (r *MongoTransactionRepository) DeleteTransactionsByOwner(ctx context.Context, userID string) error {
	return deleteByOwner(ctx, r.db, transactionsCollection, userID)
}

// MongoSectionRepository is the concrete implementation of store.SectionRepository.
type MongoSectionRepository struct {
	db *mongo.Database
}

func (r *MongoSectionRepository) FindSection(ctx context.Context, userID string, category domain.SectionCategory, subcategory string) (*domain.Section, error) {
	return FindSectionWithDB(ctx, r.db, userID, category, subcategory)
}

func (r *MongoSectionRepository) UpsertSectionTotal(ctx context.Context, userID string, category domain.SectionCategory, subcategory string, total float64) error {
	return UpsertSectionTotalWithDB(ctx, r.db, userID, category, subcategory, total)
}

func (r *MongoSectionRepository) DeleteSectionsByOwner(ctx context.Context, userID string) error {
	return deleteByOwner(ctx, r.db, sectionsCollection, userID)
}
