package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pangpangeats/pangpangeats-api/internal/api/shared"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
)

// OrderHandler handles order API requests.
type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

// NewOrderHandler creates a new OrderHandler with the given dependencies.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
	}
}

func toOrderResponse(order *domain.Order) OrderResponse {
	selections := make([]SelectionResponse, 0, len(order.Selections))
	for _, s := range order.Selections {
		selections = append(selections, SelectionResponse{
			ID:         s.ID,
			MenuItemID: s.MenuItemID,
			Amount:     s.Amount,
			Request:    s.Request,
		})
	}

	return OrderResponse{
		ID:              order.ID,
		Selections:      selections,
		TotalCost:       order.TotalCost,
		IsPaid:          order.IsPaid,
		IsCanceled:      order.IsCanceled,
		IsDelivered:     order.IsDelivered,
		PurchasedCardID: order.PurchasedCardID,
		Request:         order.Request,
		CreatedAt:       order.CreatedAt,
	}
}

// Create handles POST /api/orders. The orderer is always the requester;
// paying with someone else's card reads as the card not existing.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	params := service.CreateOrderParams{
		PurchasedCardID: req.PurchasedCardID,
		Request:         req.Request,
	}
	for _, s := range req.Selections {
		params.Selections = append(params.Selections, service.SelectionParams{
			MenuItemID: s.MenuItemID,
			Amount:     s.Amount,
			Request:    s.Request,
		})
	}

	order, err := h.orderService.Create(r.Context(), userID, params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.List(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/orders/{id}. An order outside the requester's set
// reads as absent.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	orderID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	order, err := h.orderService.Get(r.Context(), userID, orderID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toOrderResponse(order))
}

// Cancel handles POST /api/orders/{id}/cancel. Canceling someone else's
// order is a 403; a delivered order refuses with a 400. Canceling an
// already-canceled order is a no-op.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	orderID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	order, err := h.orderService.Cancel(r.Context(), userID, orderID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toOrderResponse(order))
}
