package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service
// implementations. Callers check for them with errors.Is(); the API layer
// maps them to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. Returned by mutation paths only; read
	// paths hide foreign resources behind not-found instead.
	// API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrStoreOwnerRequired indicates the requester's role does not permit
	// operating a restaurant.
	// API layer maps this to HTTP 403 Forbidden.
	ErrStoreOwnerRequired = errors.New("requester is not a store owner")

	// ErrOrderDelivered indicates a cancel was attempted after delivery.
	// API layer maps this to HTTP 400 Bad Request.
	ErrOrderDelivered = errors.New("order has already been delivered")

	// ErrMenuUnavailable indicates an order referenced a menu item that is
	// currently not offered.
	// API layer maps this to HTTP 400 Bad Request.
	ErrMenuUnavailable = errors.New("menu item is not available")
)

// ServiceError is a custom error type carrying the failed operation for
// logs while wrapping the causal error for errors.Is checks.
type ServiceError struct {
	Component string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Component, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Component, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(component, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Component: component,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
