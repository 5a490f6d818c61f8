// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"personal-ledger/internal/domain"
	"personal-ledger/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for
// PostgreSQL. Transactions are insert-only; there is no update path.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, user_id, user_name, type, amount, date, description, balance_after, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.UserID,
		transaction.UserName,
		transaction.Type,
		transaction.Amount,
		transaction.Date,
		transaction.Description,
		transaction.BalanceAfter,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByUserID returns all transactions for a user, newest
// business date first, same-day entries most-recently-created first.
// An unknown user id simply yields an empty slice.
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, user_id, user_name, type, amount, date, description, balance_after, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for user %s: %w", userID, err)
	}
	return transactions, nil
}

// DeleteTransactionsByUserID removes every transaction owned by the
// user. Deleting zero rows is not an error: a user may have no history.
func (r *TransactionRepository) DeleteTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete transactions for user %s: %w", userID, err)
	}
	return nil
}
