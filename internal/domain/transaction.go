// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the direction of a ledger transaction.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Transaction is an immutable ledger entry. The amount is always
// positive; the sign of the effect is carried by Type. BalanceAfter is
// a point-in-time snapshot of the user's balance right after this
// transaction was applied and is never recomputed.
type Transaction struct {
	ID           string          `db:"id" json:"id"`                      // UUID primary key
	UserID       string          `db:"user_id" json:"userId"`             // Owning user; weak reference, no FK
	UserName     string          `db:"user_name" json:"userName"`         // User's name at transaction time, not resynced on rename
	Type         TransactionType `db:"type" json:"type"`                  // credit or debit
	Amount       decimal.Decimal `db:"amount" json:"amount"`              // Strictly positive, NUMERIC(20, 4) in DB
	Date         time.Time       `db:"date" json:"date"`                  // Caller-supplied business date
	Description  string          `db:"description" json:"description"`    // Optional free text
	BalanceAfter decimal.Decimal `db:"balance_after" json:"balanceAfter"` // Balance snapshot after applying
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`       // Record creation time, ordering tie-break
}

// NewTransaction creates a new Transaction for the given user.
func NewTransaction(
	user *User,
	txType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	description string,
	balanceAfter decimal.Decimal,
) *Transaction {
	return &Transaction{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		UserName:     user.Name,
		Type:         txType,
		Amount:       amount,
		Date:         date,
		Description:  description,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now().UTC(),
	}
}
