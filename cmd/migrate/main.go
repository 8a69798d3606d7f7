package main

import (
	"context"
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvloznov/polarix/internal/config"
	infraMongo "github.com/dvloznov/polarix/internal/infra/mongo"
	"github.com/dvloznov/polarix/internal/logger"
)

const schemaMigrationsCollection = "schema_migrations"

// Migration is one versioned change to the database. Definition is the
// canonical description the checksum is taken from.
type Migration struct {
	Version    int
	Name       string
	Definition string
	Apply      func(ctx context.Context, db *mongo.Database) error
}

// Checksum identifies the migration's definition.
func (m Migration) Checksum() string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(m.Definition)))
}

// Label is the display name used in logs.
func (m Migration) Label() string {
	return fmt.Sprintf("%04d_%s", m.Version, m.Name)
}

// AppliedMigration represents a migration that has already been applied
type AppliedMigration struct {
	Version   int       `bson:"_id"`
	Name      string    `bson:"name"`
	AppliedAt time.Time `bson:"appliedAt"`
	Checksum  string    `bson:"checksum"`
	AppliedBy string    `bson:"appliedBy"`
}

var (
	appliedBy = flag.String("applied-by", "migrate-cli", "Name of the tool applying migrations")
	dryRun    = flag.Bool("dry-run", false, "List pending migrations without applying them")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if cfg.MongoURI == "" {
		log.Fatal().Msg("MONGO_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	st, err := infraMongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer st.Close(context.Background())
	db := st.Database()

	log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get applied migrations")
	}
	log.Info().Int("applied", len(applied)).Msg("Found already applied migrations")

	all := migrations()
	warnChecksumDrift(log, all, applied)

	appliedCount := 0
	for _, m := range pendingMigrations(all, applied) {
		if *dryRun {
			log.Info().Str("migration", m.Label()).Msg("[PENDING]")
			continue
		}

		log.Info().Str("migration", m.Label()).Msg("[RUN]")
		if err := m.Apply(ctx, db); err != nil {
			log.Fatal().Err(err).Str("migration", m.Label()).Msg("Failed to execute migration")
		}
		if err := recordMigration(ctx, db, m, *appliedBy); err != nil {
			log.Fatal().Err(err).Str("migration", m.Label()).Msg("Failed to record migration")
		}
		log.Info().Str("migration", m.Label()).Msg("[OK]")
		appliedCount++
	}

	if appliedCount == 0 && !*dryRun {
		log.Info().Msg("No new migrations to apply. Database is up to date.")
	} else if appliedCount > 0 {
		log.Info().Int("count", appliedCount).Msg("Successfully applied migrations")
	}
}

// migrations returns every migration in version order.
func migrations() []Migration {
	return []Migration{
		{
			Version:    1,
			Name:       "indexes",
			Definition: indexDefinition(),
			Apply:      infraMongo.EnsureIndexes,
		},
		{
			Version:    2,
			Name:       "backfill_has_received_email",
			Definition: `users: set hasReceivedEmail=false where missing`,
			Apply: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection("users").UpdateMany(ctx,
					bson.M{"hasReceivedEmail": bson.M{"$exists": false}},
					bson.M{"$set": bson.M{"hasReceivedEmail": false}})
				return err
			},
		},
		{
			Version:    3,
			Name:       "backfill_category_subcategories",
			Definition: `categories: set subcategories=[] where missing or null`,
			Apply: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection("categories").UpdateMany(ctx,
					bson.M{"subcategories": nil},
					bson.M{"$set": bson.M{"subcategories": bson.A{}}})
				return err
			},
		},
	}
}

// indexDefinition renders the index list in canonical extended JSON so
// adding or changing an index changes the checksum.
func indexDefinition() string {
	var out []byte
	for _, spec := range infraMongo.Indexes() {
		doc := bson.D{
			{Key: "collection", Value: spec.Collection},
			{Key: "name", Value: spec.Name},
			{Key: "keys", Value: spec.Keys},
			{Key: "unique", Value: spec.Unique},
		}
		raw, err := bson.MarshalExtJSON(doc, true, false)
		if err != nil {
			// Index specs are static values; this cannot fail.
			panic(err)
		}
		out = append(out, raw...)
		out = append(out, '\n')
	}
	return string(out)
}

// pendingMigrations returns the migrations not yet applied, in version order.
func pendingMigrations(all []Migration, applied []AppliedMigration) []Migration {
	done := make(map[int]bool, len(applied))
	for _, am := range applied {
		done[am.Version] = true
	}

	var pending []Migration
	for _, m := range all {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending
}

// checksumDrift returns the applied migrations whose definition has since changed.
func checksumDrift(all []Migration, applied []AppliedMigration) []Migration {
	byVersion := make(map[int]AppliedMigration, len(applied))
	for _, am := range applied {
		byVersion[am.Version] = am
	}

	var drifted []Migration
	for _, m := range all {
		if am, ok := byVersion[m.Version]; ok && am.Checksum != "" && am.Checksum != m.Checksum() {
			drifted = append(drifted, m)
		}
	}
	return drifted
}

func warnChecksumDrift(log zerolog.Logger, all []Migration, applied []AppliedMigration) {
	for _, m := range checksumDrift(all, applied) {
		log.Warn().Str("migration", m.Label()).Msg("Applied migration has changed since it ran; write a new migration instead")
	}
}

// getAppliedMigrations retrieves the list of already applied migrations
func getAppliedMigrations(ctx context.Context, db *mongo.Database) ([]AppliedMigration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := db.Collection(schemaMigrationsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}

	var applied []AppliedMigration
	if err := cur.All(ctx, &applied); err != nil {
		return nil, fmt.Errorf("decoding applied migrations: %w", err)
	}
	return applied, nil
}

// recordMigration records a successfully applied migration in schema_migrations
func recordMigration(ctx context.Context, db *mongo.Database, m Migration, by string) error {
	_, err := db.Collection(schemaMigrationsCollection).InsertOne(ctx, AppliedMigration{
		Version:   m.Version,
		Name:      m.Name,
		AppliedAt: time.Now().UTC(),
		Checksum:  m.Checksum(),
		AppliedBy: by,
	})
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}
