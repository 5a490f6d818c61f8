// internal/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"personal-ledger/internal/domain"
	"personal-ledger/internal/repository"
	"personal-ledger/internal/util"
	"personal-ledger/pkg/db"
)

// LedgerService defines the interface for ledger business logic.
type LedgerService interface {
	CreateUser(ctx context.Context, name string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SearchUsers(ctx context.Context, query string) ([]domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	ApplyTransaction(ctx context.Context, userID string, txType domain.TransactionType, amount decimal.Decimal, date time.Time, description string) (*domain.User, *domain.Transaction, error)
	GetTransactionHistory(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewLedgerService creates a new instance of LedgerService. Passing nil
// for dbBeginner and dbExecutor yields a service that answers every
// operation with ErrStorageUnavailable, which is how the application
// keeps serving when the database is unreachable at startup.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) LedgerService {
	return &ledgerService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

func (s *ledgerService) available() error {
	if s.dbBeginner == nil || s.dbExecutor == nil {
		return util.ErrStorageUnavailable
	}
	return nil
}

// ApplyTransaction validates and applies a credit or debit to a user's
// balance and records the matching transaction. The balance update and
// the transaction insert happen in one database transaction: the stored
// balanceAfter snapshot always equals the balance the update produced.
// Debits may push the balance negative; no floor is enforced.
func (s *ledgerService) ApplyTransaction(ctx context.Context, userID string, txType domain.TransactionType, amount decimal.Decimal, date time.Time, description string) (*domain.User, *domain.Transaction, error) {
	// Validation order matters: each failure mode is distinct and must
	// be detected before any mutation.
	if !txType.Valid() {
		return nil, nil, fmt.Errorf("%w: type must be either credit or debit", util.ErrInvalidInput)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be a positive number", util.ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, nil, fmt.Errorf("%w: date is required", util.ErrInvalidInput)
	}
	if err := s.available(); err != nil {
		return nil, nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("apply transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("apply transaction: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.GetUserByID(ctx, txExecutor, userID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("apply transaction: failed to get user %s: %w", userID, err)
	}

	delta := amount
	if txType == domain.TransactionTypeDebit {
		delta = amount.Neg()
	}

	newBalance, err := s.userRepo.AdjustBalance(ctx, txExecutor, userID, delta)
	if err != nil {
		return nil, nil, fmt.Errorf("apply transaction: failed to update balance for user %s: %w", userID, err)
	}

	transaction := domain.NewTransaction(user, txType, amount, date, description, newBalance)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("apply transaction: failed to create transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("apply transaction: failed to commit transaction: %w", err)
	}

	user.Balance = newBalance
	return user, transaction, nil
}

// CreateUser registers a new user with a zero balance. The name is
// trimmed; empty and duplicate names are rejected before any insert.
func (s *ledgerService) CreateUser(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrInvalidInput)
	}
	if err := s.available(); err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create user: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByName(ctx, txExecutor, name)
	if err == nil {
		return nil, util.ErrDuplicateUser
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create user: failed to check existing user: %w", err)
	}

	user := domain.NewUser(name)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create user: failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser retrieves a single user by id.
func (s *ledgerService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: failed to get user %s: %w", id, err)
	}
	return user, nil
}

// ListUsers returns every user sorted by name ascending.
func (s *ledgerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SearchUsers returns users whose name contains the query as a
// case-insensitive substring. An empty query yields an empty result,
// not the full listing; that is what ListUsers is for.
func (s *ledgerService) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	if query == "" {
		return []domain.User{}, nil
	}
	if err := s.available(); err != nil {
		return nil, err
	}
	users, err := s.userRepo.SearchUsersByName(ctx, s.dbExecutor, query)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and all their transactions in a single
// database transaction, so a failure partway through leaves no
// half-deleted ledger behind.
func (s *ledgerService) DeleteUser(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete user: transaction controller does not implement DBExecutor")
	}

	if err := s.userRepo.DeleteUser(ctx, txExecutor, id); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("delete user: failed to delete user %s: %w", id, err)
	}

	if err := s.transactionRepo.DeleteTransactionsByUserID(ctx, txExecutor, id); err != nil {
		return fmt.Errorf("delete user: failed to delete transactions for user %s: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete user: failed to commit transaction: %w", err)
	}

	return nil
}

// GetTransactionHistory returns all transactions for the given user id,
// newest business date first. Deliberately no existence check: an
// unknown or deleted id yields an empty history, not an error.
func (s *ledgerService) GetTransactionHistory(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get transaction history: %w", err)
	}
	return transactions, nil
}
