package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/mocks"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserHandlerFixture() (*UserHandler, *mocks.MockUserStore) {
	userStore := mocks.NewMockUserStore()
	svc := service.NewUserService(userStore, &mocks.MockPasswordVerifier{}, auth.NewDefaultPasswordPolicy(), nil, nil)
	return NewUserHandler(svc), userStore
}

func TestUserRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"phone_number": "01012345678",
				"name":         "홍길동",
				"password":     "sturdyPass1",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "phone number with dashes",
			payload: map[string]interface{}{
				"phone_number": "010-1234-5678",
				"name":         "홍길동",
				"password":     "sturdyPass1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			payload: map[string]interface{}{
				"phone_number": "01012345678",
				"name":         "홍길동",
				"password":     "12345678",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"phone_number": "01012345678",
				"password":     "sturdyPass1",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newUserHandlerFixture()

			recorder := postJSON(t, handler.Register, "/api/users/register", tt.payload)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp UserResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "01012345678", resp.PhoneNumber)
				assert.Equal(t, "CLI", resp.Role)
				assert.NotContains(t, recorder.Body.String(), "password")
				assert.NotContains(t, recorder.Body.String(), "is_superuser")
			}
		})
	}
}

func TestUserRegisterDuplicatePhoneNumber(t *testing.T) {
	t.Parallel()

	handler, _ := newUserHandlerFixture()

	payload := map[string]interface{}{
		"phone_number": "01012345678",
		"name":         "첫번째",
		"password":     "sturdyPass1",
	}
	first := postJSON(t, handler.Register, "/api/users/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	payload["name"] = "두번째"
	second := postJSON(t, handler.Register, "/api/users/register", payload)
	assert.Equal(t, http.StatusBadRequest, second.Code)
}

func TestUserProfile(t *testing.T) {
	t.Parallel()

	handler, userStore := newUserHandlerFixture()
	user := seedActiveUser(t, userStore, "01012345678")

	t.Run("get own profile", func(t *testing.T) {
		req := authenticatedRequest(t, "GET", "/api/users/profile", user.ID, nil, nil)
		recorder := httptest.NewRecorder()
		handler.GetProfile(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp UserResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "01012345678", resp.PhoneNumber)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := authenticatedRequest(t, "GET", "/api/users/profile", uuid.Nil, nil, nil)
		recorder := httptest.NewRecorder()
		handler.GetProfile(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestUserUpdateProfileIgnoresPhoneNumber(t *testing.T) {
	t.Parallel()

	handler, userStore := newUserHandlerFixture()
	user := seedActiveUser(t, userStore, "01012345678")

	payload := map[string]interface{}{
		"name":         "새이름",
		"phone_number": "01099990000",
	}
	req := authenticatedRequest(t, "PATCH", "/api/users/profile", user.ID, payload, nil)
	recorder := httptest.NewRecorder()
	handler.UpdateProfile(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp UserResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "새이름", resp.Name)
	assert.Equal(t, "01012345678", resp.PhoneNumber, "phone number must survive update attempts")
}

func TestUserDeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("deletes own account", func(t *testing.T) {
		handler, userStore := newUserHandlerFixture()
		user := seedActiveUser(t, userStore, "01012345678")

		req := authenticatedRequest(t, "DELETE", "/api/users/profile", user.ID, nil, nil)
		recorder := httptest.NewRecorder()
		handler.DeleteAccount(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, userStore.Users)
	})

	t.Run("refused while dependents exist", func(t *testing.T) {
		handler, userStore := newUserHandlerFixture()
		user := seedActiveUser(t, userStore, "01012345678")
		userStore.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
			return store.ErrDeleteProtected
		}

		req := authenticatedRequest(t, "DELETE", "/api/users/profile", user.ID, nil, nil)
		recorder := httptest.NewRecorder()
		handler.DeleteAccount(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, userStore.Users, "01012345678")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		handler, _ := newUserHandlerFixture()

		req := authenticatedRequest(t, "DELETE", "/api/users/profile", uuid.Nil, nil, nil)
		recorder := httptest.NewRecorder()
		handler.DeleteAccount(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestUserSetPassword(t *testing.T) {
	t.Parallel()

	handler, userStore := newUserHandlerFixture()
	user := seedActiveUser(t, userStore, "01012345678")

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{"valid password", map[string]interface{}{"password": "newSturdy2"}, http.StatusOK},
		{"weak password", map[string]interface{}{"password": "short"}, http.StatusBadRequest},
		{"missing password", map[string]interface{}{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authenticatedRequest(t, "POST", "/api/users/set_password", user.ID, tt.payload, nil)
			recorder := httptest.NewRecorder()
			handler.SetPassword(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}

	stored, err := userStore.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:newSturdy2", stored.HashedPassword)
}
