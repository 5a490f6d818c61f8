// internal/api/handler/ledger.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"personal-ledger/internal/domain"
	"personal-ledger/internal/service"
	"personal-ledger/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

// LedgerHandler handles HTTP requests for users and their transactions.
type LedgerHandler struct {
	service service.LedgerService
	logger  *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(svc service.LedgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *LedgerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *LedgerHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrDuplicateUser):
		statusCode = http.StatusBadRequest
		message = "User already exists"
	case util.IsError(err, util.ErrUserNotFound), util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case util.IsError(err, util.ErrStorageUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = "Storage unavailable"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// CreateUserRequest represents the request body for adding a user.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// CreateUser handles the add-user request.
// POST /api/users
func (h *LedgerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, fmt.Errorf("%w: malformed request body", util.ErrInvalidInput))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, user)
}

// ListUsers handles the list-all-users request.
// GET /api/users
func (h *LedgerHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, users)
}

// SearchUsers handles the name-search request. A missing or empty q
// yields an empty list, unlike ListUsers which returns everyone.
// GET /api/users/search?q=
func (h *LedgerHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users, err := h.service.SearchUsers(r.Context(), query)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, users)
}

// GetUser handles the get-user-by-id request.
// GET /api/users/{userID}
func (h *LedgerHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, user)
}

// DeleteUser handles the delete-user request, cascading to the user's
// transactions.
// DELETE /api/users/{userID}
func (h *LedgerHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// CreateTransactionRequest represents the request body for applying a
// credit or debit. Amount accepts a JSON number or numeric string.
type CreateTransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// CreateTransactionResponse is the success payload: the refreshed user
// together with the newly created transaction.
type CreateTransactionResponse struct {
	User        *domain.User        `json:"user"`
	Transaction *domain.Transaction `json:"transaction"`
}

// CreateTransaction handles the apply-transaction request.
// POST /api/users/{userID}/transactions
func (h *LedgerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, fmt.Errorf("%w: malformed request body", util.ErrInvalidInput))
		return
	}

	// Validate in a fixed order so each failure mode is distinct:
	// type, then amount, then date, then (in the service) user existence.
	txType := domain.TransactionType(req.Type)
	if !txType.Valid() {
		h.respondWithError(w, fmt.Errorf("%w: type must be either credit or debit", util.ErrInvalidInput))
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		h.respondWithError(w, fmt.Errorf("%w: amount must be a positive number", util.ErrInvalidInput))
		return
	}
	date, err := parseBusinessDate(req.Date)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	user, transaction, err := h.service.ApplyTransaction(r.Context(), userID, txType, req.Amount, date, req.Description)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, CreateTransactionResponse{
		User:        user,
		Transaction: transaction,
	})
}

// GetTransactionHistory handles the transaction-history request. An
// unknown user id is not an error; it simply has no history.
// GET /api/users/{userID}/transactions
func (h *LedgerHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	transactions, err := h.service.GetTransactionHistory(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, transactions)
}

// parseBusinessDate interprets the supplied business date. Plain
// calendar dates and full RFC 3339 timestamps are both accepted; no
// range validation is applied.
func parseBusinessDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", util.ErrInvalidInput)
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: date must be a valid calendar date", util.ErrInvalidInput)
}
