package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same phone number).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDeleteProtected is returned when deleting an entity is refused
	// because delete-protected dependents still reference it.
	ErrDeleteProtected = errors.New("delete refused: protected references exist")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCardNotFound indicates that the requested credit card does not
	// exist, or is hidden from the requester by ownership filtering.
	ErrCardNotFound = fmt.Errorf("%w: credit card", ErrNotFound)

	// ErrRestaurantNotFound indicates that the requested restaurant does not exist.
	ErrRestaurantNotFound = fmt.Errorf("%w: restaurant", ErrNotFound)

	// ErrMenuItemNotFound indicates that the requested menu item does not exist.
	ErrMenuItemNotFound = fmt.Errorf("%w: menu item", ErrNotFound)

	// ErrOrderNotFound indicates that the requested order does not exist,
	// or is hidden from the requester by ownership filtering.
	ErrOrderNotFound = fmt.Errorf("%w: order", ErrNotFound)

	// ErrPhoneNumberExists indicates that a user with the given phone
	// number already exists.
	ErrPhoneNumberExists = fmt.Errorf("%w: phone number", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // the entity type (e.g., "user", "credit_card")
	Operation string // the operation that failed (e.g., "create", "delete")
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
