package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/bootstrap"
	"github.com/dvloznov/polarix/internal/config"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/export"
	infraMongo "github.com/dvloznov/polarix/internal/infra/mongo"
	"github.com/dvloznov/polarix/internal/logger"
	"github.com/dvloznov/polarix/internal/notify"
	"github.com/dvloznov/polarix/internal/sections"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	switch os.Args[1] {
	case "users":
		runUsers(cfg, log)
	case "seed":
		runSeed(cfg, log)
	case "inspect":
		runInspect(cfg, log)
	case "section":
		runSection(cfg, log)
	case "template":
		runTemplate(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Polarix CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  users     List registered users")
	fmt.Println("  seed      Add any missing default categories and accounts for a user")
	fmt.Println("  inspect   Show a user's categories, accounts and transactions")
	fmt.Println("  section   Read one section total")
	fmt.Println("  template  Write the transaction import template to a file")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// connect opens the configured MongoDB store or exits.
func connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) *infraMongo.Store {
	if cfg.MongoURI == "" {
		log.Fatal().Msg("MONGO_URI is required")
	}
	st, err := infraMongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	return st
}

func lookupUser(ctx context.Context, st *infraMongo.Store, email string, log zerolog.Logger) *domain.User {
	user, err := st.Users().GetUserByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("User not found")
	}
	return user
}

func runUsers(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st := connect(ctx, cfg, log)
	defer st.Close(context.Background())

	users, err := st.Users().ListUsers(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list users")
	}

	fmt.Printf("\n=== Users (%d) ===\n", len(users))
	for _, u := range users {
		fmt.Printf("%s  %-20s %-30s welcomed=%t\n", u.ID, u.Username, u.Email, u.HasReceivedEmail)
	}
}

func runSeed(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	email := fs.String("email", "", "Email of the user to seed")
	fs.Parse(os.Args[2:])

	if *email == "" {
		log.Fatal().Msg("Error: --email is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st := connect(ctx, cfg, log)
	defer st.Close(context.Background())

	user := lookupUser(ctx, st, *email, log)

	boot := bootstrap.New(st, notify.NewLogNotifier(log), nil, log)
	cats, accs, err := boot.Seed(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Printf("Added %d categories and %d accounts for %s.\n", cats, accs, user.Email)
}

func runInspect(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	email := fs.String("email", "", "Email of the user to inspect")
	fs.Parse(os.Args[2:])

	if *email == "" {
		log.Fatal().Msg("Error: --email is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st := connect(ctx, cfg, log)
	defer st.Close(context.Background())

	user := lookupUser(ctx, st, *email, log)

	fmt.Println("\n=== User Details ===")
	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email:    %s\n", user.Email)
	fmt.Printf("Welcomed: %t\n", user.HasReceivedEmail)

	categories, err := st.Categories().ListCategories(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list categories")
	}
	fmt.Printf("\n=== Categories (%d) ===\n", len(categories))
	for _, c := range categories {
		fmt.Printf("  %s: %v\n", c.Name, c.Subcategories)
	}

	accounts, err := st.Accounts().ListAccounts(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list accounts")
	}
	fmt.Printf("\n=== Accounts (%d) ===\n", len(accounts))
	for _, a := range accounts {
		fmt.Printf("  %s\n", a.Name)
	}

	txs, err := st.Transactions().ListTransactions(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}
	fmt.Printf("\n=== Transactions (%d) ===\n", len(txs))
	for i, tx := range txs {
		fmt.Printf("\n%d. %s\n", i+1, tx.Description)
		fmt.Printf("   Date:     %s\n", tx.Date.Format("2006-01-02"))
		fmt.Printf("   Amount:   %.2f\n", tx.Amount)
		fmt.Printf("   Category: %s / %s\n", tx.Category, tx.Subcategory)
		fmt.Printf("   Account:  %s\n", tx.Account)
	}
	fmt.Println()
}

func runSection(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("section", flag.ExitOnError)
	email := fs.String("email", "", "Email of the section owner")
	category := fs.String("category", "", "Section category (Income, Expense, Transfer, Asset, Liability)")
	subcategory := fs.String("subcategory", "", "Subcategory name")
	fs.Parse(os.Args[2:])

	if *email == "" || *category == "" || *subcategory == "" {
		log.Fatal().Msg("Usage: cli section -email EMAIL -category CATEGORY -subcategory NAME")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st := connect(ctx, cfg, log)
	defer st.Close(context.Background())

	agg := sections.NewAggregator(st.Users(), st.Sections(), log)
	section, err := agg.Get(ctx, *email, domain.SectionCategory(*category), *subcategory)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read section")
	}

	fmt.Printf("%s / %s: %.2f\n", section.Category, section.Subcategory, section.Total)
}

func runTemplate(log zerolog.Logger) {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	out := fs.String("file", "transactions.xlsx", "Output path")
	fs.Parse(os.Args[2:])

	data, err := export.BuildTemplate()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build template")
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal().Err(err).Str("file", *out).Msg("Failed to write template")
	}

	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(data))
}
