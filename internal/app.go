// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "personal-ledger/internal/api"
	"personal-ledger/internal/api/handler"
	"personal-ledger/internal/config"
	"personal-ledger/internal/repository"
	"personal-ledger/internal/repository/postgres"
	"personal-ledger/internal/service"
	"personal-ledger/internal/util"
	"personal-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // nil when running in degraded no-database mode

	// Repositories
	UserRepository        repository.UserRepository
	TransactionRepository repository.TransactionRepository

	// Services
	LedgerService service.LedgerService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components. A failed database
// connection is not fatal: the service keeps serving and every data
// operation reports the storage as unavailable, matching how the ledger
// behaves for its front-end when its store is down.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database (degrades gracefully on failure)
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		app.Logger.Error("Failed to connect to database, continuing without storage", "error", err)
	} else {
		app.DB = database
		if err := postgres.EnsureSchema(ctx, app.DB); err != nil {
			return fmt.Errorf("failed to ensure database schema: %w", err)
		}
		app.Logger.Info("Database connection established.")
	}

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	if app.DB != nil {
		app.LedgerService = service.NewLedgerService(
			app.DB, // DBTxBeginner
			app.DB, // DBExecutor for plain reads
			app.UserRepository,
			app.TransactionRepository,
			db.BeginTx,
			db.CommitTx,
			db.RollbackTx,
		)
	} else {
		// nil beginner/executor: every operation answers 503
		app.LedgerService = service.NewLedgerService(
			nil,
			nil,
			app.UserRepository,
			app.TransactionRepository,
			db.BeginTx,
			db.CommitTx,
			db.RollbackTx,
		)
	}
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	ledgerHandler := handler.NewLedgerHandler(app.LedgerService, app.Logger)
	app.HTTPHandler = router.NewRouter(ledgerHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
