// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"personal-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(ledgerHandler *handler.LedgerHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// The API is consumed by a separately served browser front-end.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Ledger API routes
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", ledgerHandler.ListUsers)
		r.Post("/", ledgerHandler.CreateUser)
		// Registered before /{userID} so "search" is never taken for an id
		r.Get("/search", ledgerHandler.SearchUsers)

		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", ledgerHandler.GetUser)
			r.Delete("/", ledgerHandler.DeleteUser)
			r.Get("/transactions", ledgerHandler.GetTransactionHistory)
			r.Post("/transactions", ledgerHandler.CreateTransaction)
		})
	})

	return r
}
