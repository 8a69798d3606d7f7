// Package api assembles the HTTP surface: middleware chain, public routes
// and the token-protected route group, all under /api.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/handlers"
	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/auth"
	"github.com/dvloznov/polarix/internal/bootstrap"
	"github.com/dvloznov/polarix/internal/sections"
	"github.com/dvloznov/polarix/internal/store"
)

// Tokens issues and verifies session tokens.
type Tokens interface {
	handlers.TokenIssuer
	middleware.TokenParser
}

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Store        store.Store
	Tokens       Tokens
	Google       auth.GoogleVerifier
	Bootstrapper *bootstrap.Bootstrapper
	CORSOrigins  []string
	Log          zerolog.Logger
}

// NewRouter builds the application handler.
func NewRouter(deps Dependencies) http.Handler {
	log := deps.Log

	authHandler := handlers.NewAuthHandler(deps.Store.Users(), deps.Tokens, deps.Google, deps.Bootstrapper, log)
	usersHandler := handlers.NewUsersHandler(deps.Store, log)
	profileHandler := handlers.NewProfileHandler(deps.Store.Profiles(), deps.Store.Users(), log)
	categoriesHandler := handlers.NewCategoriesHandler(deps.Store.Categories(), log)
	accountsHandler := handlers.NewAccountsHandler(deps.Store.Accounts(), log)
	transactionsHandler := handlers.NewTransactionsHandler(deps.Store.Transactions(), log)
	sectionsHandler := handlers.NewSectionsHandler(sections.NewAggregator(deps.Store.Users(), deps.Store.Sections(), log), deps.Store.Users(), log)
	templatesHandler := handlers.NewTemplatesHandler(log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(deps.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/users/signup", authHandler.Signup)
		r.Post("/users/login", authHandler.Login)
		r.Post("/auth/google", authHandler.GoogleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(deps.Tokens))

			r.Get("/users/profile", usersHandler.GetMe)
			r.Put("/users/profile", usersHandler.UpdateMe)
			r.Put("/users/change-password", usersHandler.ChangePassword)
			r.Delete("/users", usersHandler.DeleteMe)

			r.Post("/profile", profileHandler.Save)
			r.Get("/profile/{email}", profileHandler.Get)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoriesHandler.List)
				r.Post("/", categoriesHandler.Create)
				r.Put("/{id}", categoriesHandler.Update)
				r.Delete("/{id}", categoriesHandler.Delete)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", accountsHandler.List)
				r.Post("/", accountsHandler.Create)
				r.Put("/{id}", accountsHandler.Update)
				r.Delete("/{id}", accountsHandler.Delete)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", transactionsHandler.List)
				r.Post("/", transactionsHandler.Create)
				r.Get("/{id}", transactionsHandler.Get)
				r.Put("/{id}", transactionsHandler.Update)
				r.Delete("/{id}", transactionsHandler.Delete)
			})

			r.Post("/sections", sectionsHandler.Upsert)
			r.Get("/sections/{email}/{category}/{subcategory}", sectionsHandler.Get)

			r.Get("/templates/transactions.xlsx", templatesHandler.Transactions)
		})
	})

	return r
}
