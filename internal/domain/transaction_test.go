// internal/domain/transaction_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionTypeCredit.Valid())
	assert.True(t, TransactionTypeDebit.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.False(t, TransactionType("").Valid())
	assert.False(t, TransactionType("CREDIT").Valid())
}

func TestNewTransactionSnapshotsUserName(t *testing.T) {
	user := NewUser("Alice")
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	balanceAfter := decimal.NewFromInt(500)

	tx := NewTransaction(user, TransactionTypeCredit, decimal.NewFromInt(500), date, "salary", balanceAfter)

	assert.NotEmpty(t, tx.ID)
	assert.NotEqual(t, user.ID, tx.ID)
	assert.Equal(t, user.ID, tx.UserID)
	assert.Equal(t, "Alice", tx.UserName)
	assert.Equal(t, date, tx.Date)
	assert.True(t, balanceAfter.Equal(tx.BalanceAfter))

	// Snapshot: a later rename must not affect the recorded name.
	user.Name = "Alicia"
	assert.Equal(t, "Alice", tx.UserName)
}

func TestNewUserStartsAtZero(t *testing.T) {
	user := NewUser("Bob")

	assert.NotEmpty(t, user.ID)
	assert.True(t, user.Balance.IsZero())
	assert.False(t, user.CreatedAt.IsZero())
}
