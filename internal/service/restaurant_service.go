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

// RestaurantService provides restaurant and menu management. Creation is
// gated on the STORE_OWNER role; mutations use the explicit owner check
// (403 for foreign restaurants); public reads are unfiltered.
type RestaurantService interface {
	// Create opens a restaurant for the requester, who must be a
	// STORE_OWNER.
	Create(ctx context.Context, requester *domain.User, params CreateRestaurantParams) (*domain.Restaurant, error)

	// List returns every restaurant; this is the public browse surface.
	List(ctx context.Context) ([]*domain.Restaurant, error)

	// Get returns one restaurant with its menu.
	Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, []*domain.MenuItem, error)

	// Delete removes the requester's restaurant; its menu items go with it
	// and selections referencing them keep living with a cleared menu
	// reference.
	Delete(ctx context.Context, requesterID, restaurantID uuid.UUID) error

	// AddMenuItem puts a new dish on the requester's restaurant menu.
	AddMenuItem(ctx context.Context, requesterID, restaurantID uuid.UUID, params CreateMenuItemParams) (*domain.MenuItem, error)

	// RemoveMenuItem takes a dish off the requester's restaurant menu.
	RemoveMenuItem(ctx context.Context, requesterID, restaurantID, menuItemID uuid.UUID) error
}

// CreateRestaurantParams carries the client-writable restaurant fields.
type CreateRestaurantParams struct {
	Name                string
	TelephoneNumber     string
	MinimumOrderCost    int
	MinimumDeliveryCost int
	Description         string
	Notice              string
}

// CreateMenuItemParams carries the client-writable menu item fields.
type CreateMenuItemParams struct {
	Name        string
	Description string
	Price       int
}

// RestaurantServiceImpl implements the RestaurantService interface.
type RestaurantServiceImpl struct {
	restaurantStore store.RestaurantStore
	db              *sql.DB
	logger          *slog.Logger
}

// NewRestaurantService creates a new RestaurantService. db may be nil in
// tests that stub the store; it is only used to open the deletion
// transactions.
func NewRestaurantService(restaurantStore store.RestaurantStore, db *sql.DB, logger *slog.Logger) *RestaurantServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &RestaurantServiceImpl{
		restaurantStore: restaurantStore,
		db:              db,
		logger:          logger.With(slog.String("component", "restaurant_service")),
	}
}

// Create implements RestaurantService.Create.
func (s *RestaurantServiceImpl) Create(ctx context.Context, requester *domain.User, params CreateRestaurantParams) (*domain.Restaurant, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if requester.Role != domain.RoleStoreOwner {
		log.Debug("restaurant creation refused: requester is not a store owner",
			slog.String("user_id", requester.ID.String()),
			slog.String("role", string(requester.Role)))
		return nil, ErrStoreOwnerRequired
	}

	restaurant, err := domain.NewRestaurant(
		requester.ID,
		params.Name,
		params.TelephoneNumber,
		params.MinimumOrderCost,
		params.MinimumDeliveryCost,
		params.Description,
		params.Notice,
	)
	if err != nil {
		return nil, err
	}

	if err := s.restaurantStore.Create(ctx, restaurant); err != nil {
		log.Error("failed to create restaurant",
			slog.String("error", err.Error()),
			slog.String("owner_id", requester.ID.String()))
		return nil, err
	}

	log.Info("restaurant created",
		slog.String("restaurant_id", restaurant.ID.String()),
		slog.String("owner_id", requester.ID.String()))
	return restaurant, nil
}

// List implements RestaurantService.List.
func (s *RestaurantServiceImpl) List(ctx context.Context) ([]*domain.Restaurant, error) {
	return s.restaurantStore.List(ctx)
}

// Get implements RestaurantService.Get.
func (s *RestaurantServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, []*domain.MenuItem, error) {
	restaurant, err := s.restaurantStore.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	menu, err := s.restaurantStore.ListMenuItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return restaurant, menu, nil
}

// Delete implements RestaurantService.Delete.
func (s *RestaurantServiceImpl) Delete(ctx context.Context, requesterID, restaurantID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	restaurant, err := s.restaurantStore.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != requesterID {
		return ErrNotOwned
	}

	// Clearing selection references, cascading menu items and removing the
	// restaurant are separate statements, so they run in one transaction.
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.restaurantStore.WithTx(tx).Delete(ctx, restaurantID)
		})
	} else {
		err = s.restaurantStore.Delete(ctx, restaurantID)
	}
	if err != nil {
		log.Error("failed to delete restaurant",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", restaurantID.String()))
		return err
	}

	log.Info("restaurant deleted", slog.String("restaurant_id", restaurantID.String()))
	return nil
}

// AddMenuItem implements RestaurantService.AddMenuItem.
func (s *RestaurantServiceImpl) AddMenuItem(ctx context.Context, requesterID, restaurantID uuid.UUID, params CreateMenuItemParams) (*domain.MenuItem, error) {
	restaurant, err := s.restaurantStore.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != requesterID {
		return nil, ErrNotOwned
	}

	item, err := domain.NewMenuItem(restaurantID, params.Name, params.Description, params.Price)
	if err != nil {
		return nil, err
	}

	if err := s.restaurantStore.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// RemoveMenuItem implements RestaurantService.RemoveMenuItem.
func (s *RestaurantServiceImpl) RemoveMenuItem(ctx context.Context, requesterID, restaurantID, menuItemID uuid.UUID) error {
	restaurant, err := s.restaurantStore.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != requesterID {
		return ErrNotOwned
	}

	item, err := s.restaurantStore.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return err
	}
	if item.RestaurantID != restaurantID {
		// A menu id under someone else's restaurant path is hidden.
		return store.ErrMenuItemNotFound
	}

	// Clearing selection references and removing the item are separate
	// statements, so they run in one transaction.
	if s.db != nil {
		return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.restaurantStore.WithTx(tx).DeleteMenuItem(ctx, menuItemID)
		})
	}
	return s.restaurantStore.DeleteMenuItem(ctx, menuItemID)
}
