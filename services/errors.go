package services

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	// ErrNotFound is returned when a referenced client, service or booking
	// does not exist for the tenant.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a state transition is attempted from an
	// invalid source state, e.g. completing an already-completed booking.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned for missing required fields and
	// non-positive money values.
	ErrValidation = errors.New("validation failed")

	// ErrTrialExpired is returned by the access guard for unpaid accounts
	// whose trial window has elapsed.
	ErrTrialExpired = errors.New("trial expired")

	// ErrNotProvisioned is returned by the access guard for unpaid
	// accounts without a trial expiry set.
	ErrNotProvisioned = errors.New("account not provisioned")

	// ErrStoreUnavailable wraps transient persistence failures. Retryable.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrAdvisorUnavailable is returned when the external advice endpoint
	// cannot be reached within the retry budget.
	ErrAdvisorUnavailable = errors.New("advisor unavailable")
)

// ValidationError carries the user-facing message of a rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
