// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

func init() {
	// Monetary values go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// User represents a ledger account holder.
type User struct {
	ID        string          `db:"id" json:"id"`                // UUID primary key
	Name      string          `db:"name" json:"name"`            // Unique display name, trimmed
	Balance   decimal.Decimal `db:"balance" json:"balance"`      // Running balance, NUMERIC(20, 4) in DB; may be negative
	CreatedAt time.Time       `db:"created_at" json:"createdAt"` // Timestamp of creation
}

// NewUser creates a new User with a zero balance.
// The caller is responsible for trimming and validating the name.
func NewUser(name string) *User {
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
}
