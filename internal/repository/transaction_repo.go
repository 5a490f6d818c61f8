// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"personal-ledger/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction inserts a new immutable transaction record.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByUserID returns all transactions for a user,
	// ordered by business date descending, then creation time descending.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, userID string) ([]domain.Transaction, error)
	// DeleteTransactionsByUserID removes every transaction owned by the
	// user, as part of a cascading user delete.
	DeleteTransactionsByUserID(ctx context.Context, q DBExecutor, userID string) error
}
