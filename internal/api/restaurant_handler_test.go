package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/mocks"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type restaurantHandlerFixture struct {
	handler         *RestaurantHandler
	restaurantStore *mocks.MockRestaurantStore
	owner           *domain.User
	client          *domain.User
}

func newRestaurantHandlerFixture(t *testing.T) *restaurantHandlerFixture {
	t.Helper()

	ctx := context.Background()
	userStore := mocks.NewMockUserStore()
	restaurantStore := mocks.NewMockRestaurantStore()

	owner, err := domain.NewUser("01011112222", "사장님")
	require.NoError(t, err)
	owner.Role = domain.RoleStoreOwner
	require.NoError(t, userStore.Create(ctx, owner))

	client, err := domain.NewUser("01033334444", "손님")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(ctx, client))

	userService := service.NewUserService(userStore, &mocks.MockPasswordVerifier{}, auth.NewDefaultPasswordPolicy(), nil, nil)
	restaurantService := service.NewRestaurantService(restaurantStore, nil, nil)

	return &restaurantHandlerFixture{
		handler:         NewRestaurantHandler(restaurantService, userService),
		restaurantStore: restaurantStore,
		owner:           owner,
		client:          client,
	}
}

func validRestaurantPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":                  "빵빵분식",
		"telephone_number":      "0212345678",
		"minimum_order_cost":    12000,
		"minimum_delivery_cost": 3000,
		"description":           "떡볶이 전문",
	}
}

func TestRestaurantHandlerCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		requester  func(f *restaurantHandlerFixture) uuid.UUID
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name:       "store owner opens a restaurant",
			requester:  func(f *restaurantHandlerFixture) uuid.UUID { return f.owner.ID },
			payload:    validRestaurantPayload(),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "client is refused",
			requester:  func(f *restaurantHandlerFixture) uuid.UUID { return f.client.ID },
			payload:    validRestaurantPayload(),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unauthenticated",
			requester:  func(f *restaurantHandlerFixture) uuid.UUID { return uuid.Nil },
			payload:    validRestaurantPayload(),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "missing name",
			requester: func(f *restaurantHandlerFixture) uuid.UUID { return f.owner.ID },
			payload: map[string]interface{}{
				"telephone_number": "0212345678",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRestaurantHandlerFixture(t)

			req := authenticatedRequest(t, "POST", "/api/restaurants", tt.requester(f), tt.payload, nil)
			recorder := httptest.NewRecorder()
			f.handler.Create(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp RestaurantResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "빵빵분식", resp.Name)
				assert.Len(t, f.restaurantStore.Restaurants, 1)
			}
		})
	}
}

func TestRestaurantHandlerPublicBrowse(t *testing.T) {
	t.Parallel()

	f := newRestaurantHandlerFixture(t)
	ctx := context.Background()

	restaurant, err := domain.NewRestaurant(f.owner.ID, "빵빵분식", "0212345678", 12000, 3000, "", "")
	require.NoError(t, err)
	require.NoError(t, f.restaurantStore.Create(ctx, restaurant))

	item, err := domain.NewMenuItem(restaurant.ID, "떡볶이", "매콤달콤", 6000)
	require.NoError(t, err)
	require.NoError(t, f.restaurantStore.CreateMenuItem(ctx, item))

	// Listing needs no authentication.
	listRec := httptest.NewRecorder()
	f.handler.List(listRec, httptest.NewRequest("GET", "/api/restaurants", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	var list []RestaurantResponse
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&list))
	assert.Len(t, list, 1)

	getRec := httptest.NewRecorder()
	f.handler.Get(getRec, authenticatedRequest(t, "GET", "/api/restaurants/"+restaurant.ID.String(), uuid.Nil, nil,
		map[string]string{"id": restaurant.ID.String()}))
	require.Equal(t, http.StatusOK, getRec.Code)

	var got RestaurantResponse
	require.NoError(t, json.NewDecoder(getRec.Body).Decode(&got))
	require.Len(t, got.Menus, 1)
	assert.Equal(t, "떡볶이", got.Menus[0].Name)
}

func TestRestaurantHandlerDelete(t *testing.T) {
	t.Parallel()

	f := newRestaurantHandlerFixture(t)
	ctx := context.Background()

	restaurant, err := domain.NewRestaurant(f.owner.ID, "빵빵분식", "0212345678", 12000, 3000, "", "")
	require.NoError(t, err)
	require.NoError(t, f.restaurantStore.Create(ctx, restaurant))

	params := map[string]string{"id": restaurant.ID.String()}

	foreign := httptest.NewRecorder()
	f.handler.Delete(foreign, authenticatedRequest(t, "DELETE", "/api/restaurants/"+restaurant.ID.String(), f.client.ID, nil, params))
	assert.Equal(t, http.StatusForbidden, foreign.Code)
	assert.Len(t, f.restaurantStore.Restaurants, 1)

	own := httptest.NewRecorder()
	f.handler.Delete(own, authenticatedRequest(t, "DELETE", "/api/restaurants/"+restaurant.ID.String(), f.owner.ID, nil, params))
	assert.Equal(t, http.StatusNoContent, own.Code)
	assert.Empty(t, f.restaurantStore.Restaurants)
}

func TestRestaurantHandlerMenuItems(t *testing.T) {
	t.Parallel()

	f := newRestaurantHandlerFixture(t)
	ctx := context.Background()

	restaurant, err := domain.NewRestaurant(f.owner.ID, "빵빵분식", "0212345678", 12000, 3000, "", "")
	require.NoError(t, err)
	require.NoError(t, f.restaurantStore.Create(ctx, restaurant))

	addPayload := map[string]interface{}{
		"name":  "순대",
		"price": 5000,
	}
	addParams := map[string]string{"id": restaurant.ID.String()}

	refused := httptest.NewRecorder()
	f.handler.AddMenuItem(refused, authenticatedRequest(t, "POST", "/api/restaurants/"+restaurant.ID.String()+"/menus", f.client.ID, addPayload, addParams))
	assert.Equal(t, http.StatusForbidden, refused.Code)

	added := httptest.NewRecorder()
	f.handler.AddMenuItem(added, authenticatedRequest(t, "POST", "/api/restaurants/"+restaurant.ID.String()+"/menus", f.owner.ID, addPayload, addParams))
	require.Equal(t, http.StatusCreated, added.Code)

	var item MenuItemResponse
	require.NoError(t, json.NewDecoder(added.Body).Decode(&item))
	assert.True(t, item.IsAvailable)

	removeParams := map[string]string{"id": restaurant.ID.String(), "menuID": item.ID.String()}
	removed := httptest.NewRecorder()
	f.handler.RemoveMenuItem(removed, authenticatedRequest(t, "DELETE", "/api/restaurants/"+restaurant.ID.String()+"/menus/"+item.ID.String(), f.owner.ID, nil, removeParams))
	assert.Equal(t, http.StatusNoContent, removed.Code)
	assert.Empty(t, f.restaurantStore.MenuItems)
}
