// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"personal-ledger/internal/domain"
	"personal-ledger/internal/repository"
	"personal-ledger/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
// Methods receive a DBExecutor rather than holding the connection, so
// the same repository runs inside or outside a transaction.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user. A unique-violation on the name index is
// mapped to util.ErrDuplicateUser so racing creates surface the same
// conflict error as the application-level check.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (id, name, balance, created_at)
              VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, user.ID, user.Name, user.Balance, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return util.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, balance, created_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByName retrieves a user by exact (case-sensitive) name.
func (r *UserRepository) GetUserByName(ctx context.Context, q repository.DBExecutor, name string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, balance, created_at FROM users WHERE name = $1`
	err := q.GetContext(ctx, &user, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by name '%s': %w", name, err)
	}
	return &user, nil
}

// ListUsers returns all users sorted by name ascending.
func (r *UserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT id, name, balance, created_at FROM users ORDER BY name ASC`
	if err := q.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SearchUsersByName returns users whose name contains the query as a
// case-insensitive substring, sorted by name ascending. LIKE wildcards
// in the query are escaped so they match literally.
func (r *UserRepository) SearchUsersByName(ctx context.Context, q repository.DBExecutor, query string) ([]domain.User, error) {
	users := []domain.User{}
	pattern := "%" + escapeLikePattern(query) + "%"
	stmt := `SELECT id, name, balance, created_at FROM users
             WHERE name ILIKE $1 ESCAPE '\' ORDER BY name ASC`
	if err := q.SelectContext(ctx, &users, stmt, pattern); err != nil {
		return nil, fmt.Errorf("failed to search users by name: %w", err)
	}
	return users, nil
}

// AdjustBalance applies a signed delta to the user's balance as a single
// relative UPDATE, returning the resulting balance. The row-level write
// lock serializes concurrent adjustments for the same user.
func (r *UserRepository) AdjustBalance(ctx context.Context, q repository.DBExecutor, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`
	err := q.QueryRowContext(ctx, query, delta, id).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, util.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to adjust balance for user %s: %w", id, err)
	}
	return balance, nil
}

// DeleteUser removes the user row. Returns util.ErrNotFound if no row
// matched.
func (r *UserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id string) error {
	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting user %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// escapeLikePattern escapes LIKE/ILIKE metacharacters so user input is
// matched literally.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
