// internal/repository/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	balance NUMERIC(20, 4) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
`

// transactions.user_id deliberately carries no foreign key: records are
// only ever removed by the cascading user delete, and history lookups
// for a missing user must return empty rather than fail.
const createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	user_name TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('credit', 'debit')),
	amount NUMERIC(20, 4) NOT NULL CHECK (amount > 0),
	date DATE NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	balance_after NUMERIC(20, 4) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

const createTransactionsIndex = `
CREATE INDEX IF NOT EXISTS idx_transactions_user_history
	ON transactions (user_id, date DESC, created_at DESC);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
// Called once at startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range []string{createUsersTable, createTransactionsTable, createTransactionsIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
