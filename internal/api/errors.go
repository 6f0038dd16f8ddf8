package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors: the requester is known but not allowed to
	// touch this resource.
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, service.ErrStoreOwnerRequired),
		errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors. Ownership-filtered reads land here too: a
	// resource outside the requester's set reads as absent.
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors. Duplicate phone numbers deliberately report as
	// 400 rather than 409, matching the registration contract.
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrDeleteProtected),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrOrderDelivered),
		errors.Is(err, service.ErrMenuUnavailable):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid phone number or password"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned), errors.Is(err, domain.ErrNotOwner):
		return "You do not own this resource"

	case errors.Is(err, service.ErrStoreOwnerRequired):
		return "Only store owners may do this"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Credit card not found"

	case errors.Is(err, store.ErrRestaurantNotFound):
		return "Restaurant not found"

	case errors.Is(err, store.ErrMenuItemNotFound):
		return "Menu item not found"

	case errors.Is(err, store.ErrOrderNotFound):
		return "Order not found"

	// Bad request errors
	case errors.Is(err, store.ErrPhoneNumberExists):
		return "A user with this phone number already exists"

	case errors.Is(err, store.ErrDeleteProtected):
		return "This account still has dependent records"

	case errors.Is(err, auth.ErrWeakPassword):
		return "Password does not meet the strength requirements"

	case errors.Is(err, service.ErrOrderDelivered):
		return "A delivered order cannot be canceled"

	case errors.Is(err, service.ErrMenuUnavailable):
		return "Menu item is not available"

	case errors.Is(err, domain.ErrValidation):
		// The domain message names the field and rule and carries no
		// secrets; pass it through.
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "Invalid request data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator.ValidationErrors message into
// a short field-level description safe for clients.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'RegisterRequest.PhoneNumber' Error:Field
		// validation for 'PhoneNumber' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return "Validation failed on field '" + field + "' (rule: " + tag + ")"
				}
				return "Validation failed on field '" + field + "'"
			}
		}
	}

	return "Invalid request data"
}
