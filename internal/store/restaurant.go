package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
)

// RestaurantStore defines the interface for restaurant and menu persistence.
type RestaurantStore interface {
	// Create saves a new restaurant.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, restaurant *domain.Restaurant) error

	// GetByID retrieves a restaurant by its unique ID.
	// Returns ErrRestaurantNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)

	// List returns all restaurants in insertion order.
	List(ctx context.Context) ([]*domain.Restaurant, error)

	// Delete removes a restaurant and cascade-deletes its menu items;
	// selections referencing those menu items have their reference cleared.
	// Returns ErrRestaurantNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateMenuItem saves a new menu item.
	// Returns ErrInvalidEntity if the restaurant does not exist.
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error

	// GetMenuItem retrieves a menu item by its unique ID.
	// Returns ErrMenuItemNotFound if it does not exist.
	GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)

	// ListMenuItems returns the menu of one restaurant in insertion order.
	ListMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error)

	// DeleteMenuItem removes a menu item, clearing menu references on
	// selections (set-null policy) before the row is deleted.
	// Returns ErrMenuItemNotFound if it does not exist.
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new RestaurantStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) RestaurantStore
}
