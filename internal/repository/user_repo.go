// internal/repository/user_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"personal-ledger/internal/domain"
)

// UserRepository defines the interface for user data operations.
// Every method runs against the provided DBExecutor, so the same
// repository serves both plain reads and transactional units of work.
type UserRepository interface {
	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, q DBExecutor, id string) (*domain.User, error)
	// GetUserByName retrieves a user by exact (case-sensitive) name.
	GetUserByName(ctx context.Context, q DBExecutor, name string) (*domain.User, error)
	// ListUsers returns all users sorted by name ascending.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// SearchUsersByName returns users whose name contains the query as a
	// case-insensitive substring, sorted by name ascending.
	SearchUsersByName(ctx context.Context, q DBExecutor, query string) ([]domain.User, error)
	// AdjustBalance atomically applies a signed delta to the user's
	// balance and returns the resulting balance.
	AdjustBalance(ctx context.Context, q DBExecutor, id string, delta decimal.Decimal) (decimal.Decimal, error)
	// DeleteUser removes the user row.
	DeleteUser(ctx context.Context, q DBExecutor, id string) error
}
