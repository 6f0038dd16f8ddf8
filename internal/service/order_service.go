package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/platform/logger"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// OrderService is the creation boundary for orders. The minimum-one-
// selection invariant and the derived total cost are enforced here, not at
// the storage layer. Reads follow the filtered-queryset policy (foreign
// order ⇒ not found); Cancel performs the explicit mutate-time owner check.
type OrderService interface {
	// Create places an order for ordererID. Each selection must name an
	// existing, available menu item; the purchased card, when given, must
	// belong to the orderer (a foreign card surfaces as ErrCardNotFound).
	// TotalCost is derived from menu prices at call time.
	Create(ctx context.Context, ordererID uuid.UUID, params CreateOrderParams) (*domain.Order, error)

	// List returns the requester's own orders.
	List(ctx context.Context, ordererID uuid.UUID) ([]*domain.Order, error)

	// Get returns one of the requester's own orders.
	Get(ctx context.Context, ordererID, orderID uuid.UUID) (*domain.Order, error)

	// Cancel marks an order canceled. Fails with ErrNotOwned for someone
	// else's order and ErrOrderDelivered once delivery happened.
	Cancel(ctx context.Context, requesterID, orderID uuid.UUID) (*domain.Order, error)
}

// SelectionParams is one requested line item.
type SelectionParams struct {
	MenuItemID uuid.UUID
	Amount     int
	Request    string
}

// CreateOrderParams carries the client-writable order fields.
type CreateOrderParams struct {
	Selections      []SelectionParams
	PurchasedCardID *uuid.UUID
	Request         string
}

// OrderServiceImpl implements the OrderService interface.
type OrderServiceImpl struct {
	orderStore      store.OrderStore
	cardStore       store.CardStore
	restaurantStore store.RestaurantStore
	db              *sql.DB
	logger          *slog.Logger
}

// NewOrderService creates a new OrderService. db may be nil in tests that
// stub the stores; it is only used to open the creation transaction.
func NewOrderService(
	orderStore store.OrderStore,
	cardStore store.CardStore,
	restaurantStore store.RestaurantStore,
	db *sql.DB,
	logger *slog.Logger,
) *OrderServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderServiceImpl{
		orderStore:      orderStore,
		cardStore:       cardStore,
		restaurantStore: restaurantStore,
		db:              db,
		logger:          logger.With(slog.String("component", "order_service")),
	}
}

// Create implements OrderService.Create.
func (s *OrderServiceImpl) Create(ctx context.Context, ordererID uuid.UUID, params CreateOrderParams) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(params.Selections) == 0 {
		return nil, domain.NewValidationError("selections", "an order needs at least one selection")
	}

	// The purchased card is read through the owner-filtered path: paying
	// with someone else's card is indistinguishable from a missing card.
	if params.PurchasedCardID != nil {
		if _, err := s.cardStore.GetForOwner(ctx, ordererID, *params.PurchasedCardID); err != nil {
			return nil, err
		}
	}

	selections := make([]*domain.Selection, 0, len(params.Selections))
	totalCost := 0
	for _, p := range params.Selections {
		item, err := s.restaurantStore.GetMenuItem(ctx, p.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !item.IsAvailable {
			return nil, ErrMenuUnavailable
		}

		sel, err := domain.NewSelection(ordererID, item.ID, p.Amount, p.Request)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
		totalCost += item.Price * p.Amount
	}

	order, err := domain.NewOrder(selections, totalCost, params.PurchasedCardID, params.Request)
	if err != nil {
		return nil, err
	}

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.orderStore.WithTx(tx).Create(ctx, order)
		})
	} else {
		err = s.orderStore.Create(ctx, order)
	}
	if err != nil {
		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.String("orderer_id", ordererID.String()))
		return nil, err
	}

	log.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.String("orderer_id", ordererID.String()),
		slog.Int("total_cost", order.TotalCost),
		slog.Int("selection_count", len(order.Selections)))
	return order, nil
}

// List implements OrderService.List.
func (s *OrderServiceImpl) List(ctx context.Context, ordererID uuid.UUID) ([]*domain.Order, error) {
	return s.orderStore.ListByOrderer(ctx, ordererID)
}

// Get implements OrderService.Get.
func (s *OrderServiceImpl) Get(ctx context.Context, ordererID, orderID uuid.UUID) (*domain.Order, error) {
	return s.orderStore.GetForOrderer(ctx, ordererID, orderID)
}

// Cancel implements OrderService.Cancel.
func (s *OrderServiceImpl) Cancel(ctx context.Context, requesterID, orderID uuid.UUID) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	order, err := s.orderStore.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OrdererID() != requesterID {
		log.Debug("cancel refused: requester is not the orderer",
			slog.String("order_id", orderID.String()),
			slog.String("requester_id", requesterID.String()))
		return nil, ErrNotOwned
	}
	if order.IsDelivered {
		return nil, ErrOrderDelivered
	}

	if order.IsCanceled {
		// Cancel is idempotent.
		return order, nil
	}

	order.IsCanceled = true
	if err := s.orderStore.Update(ctx, order); err != nil {
		log.Error("failed to cancel order",
			slog.String("error", err.Error()),
			slog.String("order_id", orderID.String()))
		return nil, err
	}

	log.Info("order canceled", slog.String("order_id", orderID.String()))
	return order, nil
}
