package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pangpangeats/pangpangeats-api/internal/api/shared"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
)

// RestaurantHandler handles restaurant and menu API requests. Browsing is
// public; every mutation sits behind authentication and a store-owner
// check.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
	userService       service.UserService
	validator         *validator.Validate
}

// NewRestaurantHandler creates a new RestaurantHandler with the given
// dependencies.
func NewRestaurantHandler(
	restaurantService service.RestaurantService,
	userService service.UserService,
) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		userService:       userService,
		validator:         validator.New(),
	}
}

func toMenuItemResponse(item *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		IsAvailable: item.IsAvailable,
	}
}

func toRestaurantResponse(restaurant *domain.Restaurant, menus []*domain.MenuItem) RestaurantResponse {
	response := RestaurantResponse{
		ID:                  restaurant.ID,
		Name:                restaurant.Name,
		TelephoneNumber:     restaurant.TelephoneNumber,
		MinimumOrderCost:    restaurant.MinimumOrderCost,
		MinimumDeliveryCost: restaurant.MinimumDeliveryCost,
		Description:         restaurant.Description,
		Notice:              restaurant.Notice,
	}
	for _, item := range menus {
		response.Menus = append(response.Menus, toMenuItemResponse(item))
	}
	return response
}

// List handles GET /api/restaurants. This is the public browse surface.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurantService.List(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	response := make([]RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		response = append(response, toRestaurantResponse(restaurant, nil))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/restaurants/{id}, returning the restaurant with
// its menu.
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	restaurant, menus, err := h.restaurantService.Get(r.Context(), restaurantID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toRestaurantResponse(restaurant, menus))
}

// Create handles POST /api/restaurants. Only store owners may open one.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateRestaurantRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	requester, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	restaurant, err := h.restaurantService.Create(r.Context(), requester, service.CreateRestaurantParams{
		Name:                req.Name,
		TelephoneNumber:     req.TelephoneNumber,
		MinimumOrderCost:    req.MinimumOrderCost,
		MinimumDeliveryCost: req.MinimumDeliveryCost,
		Description:         req.Description,
		Notice:              req.Notice,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toRestaurantResponse(restaurant, nil))
}

// Delete handles DELETE /api/restaurants/{id}.
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	restaurantID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.restaurantService.Delete(r.Context(), userID, restaurantID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMenuItem handles POST /api/restaurants/{id}/menus.
func (h *RestaurantHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	restaurantID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req CreateMenuItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := h.restaurantService.AddMenuItem(r.Context(), userID, restaurantID, service.CreateMenuItemParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toMenuItemResponse(item))
}

// RemoveMenuItem handles DELETE /api/restaurants/{id}/menus/{menuID}.
func (h *RestaurantHandler) RemoveMenuItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	restaurantID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	menuItemID, err := getPathUUID(r, "menuID")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.restaurantService.RemoveMenuItem(r.Context(), userID, restaurantID, menuItemID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
