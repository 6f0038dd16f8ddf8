package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrExpiredToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid credentials",
			err:            auth.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "ownership refusal",
			err:            service.ErrNotOwned,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "role refusal",
			err:            service.ErrStoreOwnerRequired,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "card not found",
			err:            store.ErrCardNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped order not found",
			err:            fmt.Errorf("lookup failed: %w", store.ErrOrderNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "taken phone number reads as a plain bad request",
			err:            store.ErrPhoneNumberExists,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "domain validation error",
			err:            domain.NewValidationError("cvc", "must be exactly 3 digits"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "weak password",
			err:            auth.ErrWeakPassword,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "delivered order cancellation",
			err:            service.ErrOrderDelivered,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unavailable menu item",
			err:            service.ErrMenuUnavailable,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "delete protection",
			err:            store.ErrDeleteProtected,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown error",
			err:            errors.New("the database caught fire"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageHidesInternals(t *testing.T) {
	internal := errors.New("pq: connection refused on 10.0.0.5:5432")
	msg := GetSafeErrorMessage(internal)
	assert.NotContains(t, msg, "10.0.0.5")
	assert.NotContains(t, msg, "pq:")
}

func TestGetSafeErrorMessagePassesThroughValidation(t *testing.T) {
	err := domain.NewValidationError("expiry_month", "must be between 1 and 12")
	assert.Contains(t, GetSafeErrorMessage(err), "expiry_month")
}
