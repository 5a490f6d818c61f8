// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsError reports whether err matches target in its chain.
// Thin wrapper over errors.Is so callers only import util.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
