package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// MockRestaurantStore implements store.RestaurantStore for testing
type MockRestaurantStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, restaurant *domain.Restaurant) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	ListFn           func(ctx context.Context) ([]*domain.Restaurant, error)
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	CreateMenuItemFn func(ctx context.Context, item *domain.MenuItem) error
	GetMenuItemFn    func(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	ListMenuItemsFn  func(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error)
	DeleteMenuItemFn func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation. Order preserves insertion.
	Restaurants []*domain.Restaurant
	MenuItems   []*domain.MenuItem
}

// NewMockRestaurantStore creates a new mock store with initialized defaults
func NewMockRestaurantStore() *MockRestaurantStore {
	return &MockRestaurantStore{}
}

var _ store.RestaurantStore = (*MockRestaurantStore)(nil)

// Create implements the RestaurantStore interface
func (m *MockRestaurantStore) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, restaurant)
	}

	m.Restaurants = append(m.Restaurants, restaurant)
	return nil
}

// GetByID implements the RestaurantStore interface
func (m *MockRestaurantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, restaurant := range m.Restaurants {
		if restaurant.ID == id {
			return restaurant, nil
		}
	}
	return nil, store.ErrRestaurantNotFound
}

// List implements the RestaurantStore interface
func (m *MockRestaurantStore) List(ctx context.Context) ([]*domain.Restaurant, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	return append([]*domain.Restaurant{}, m.Restaurants...), nil
}

// Delete implements the RestaurantStore interface
func (m *MockRestaurantStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, restaurant := range m.Restaurants {
		if restaurant.ID == id {
			m.Restaurants = append(m.Restaurants[:i], m.Restaurants[i+1:]...)

			kept := m.MenuItems[:0]
			for _, item := range m.MenuItems {
				if item.RestaurantID != id {
					kept = append(kept, item)
				}
			}
			m.MenuItems = kept
			return nil
		}
	}
	return store.ErrRestaurantNotFound
}

// CreateMenuItem implements the RestaurantStore interface
func (m *MockRestaurantStore) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if m.CreateMenuItemFn != nil {
		return m.CreateMenuItemFn(ctx, item)
	}

	m.MenuItems = append(m.MenuItems, item)
	return nil
}

// GetMenuItem implements the RestaurantStore interface
func (m *MockRestaurantStore) GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	if m.GetMenuItemFn != nil {
		return m.GetMenuItemFn(ctx, id)
	}

	for _, item := range m.MenuItems {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, store.ErrMenuItemNotFound
}

// ListMenuItems implements the RestaurantStore interface
func (m *MockRestaurantStore) ListMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error) {
	if m.ListMenuItemsFn != nil {
		return m.ListMenuItemsFn(ctx, restaurantID)
	}

	items := make([]*domain.MenuItem, 0)
	for _, item := range m.MenuItems {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

// DeleteMenuItem implements the RestaurantStore interface
func (m *MockRestaurantStore) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if m.DeleteMenuItemFn != nil {
		return m.DeleteMenuItemFn(ctx, id)
	}

	for i, item := range m.MenuItems {
		if item.ID == id {
			m.MenuItems = append(m.MenuItems[:i], m.MenuItems[i+1:]...)
			return nil
		}
	}
	return store.ErrMenuItemNotFound
}

// WithTx implements the RestaurantStore interface
func (m *MockRestaurantStore) WithTx(tx *sql.Tx) store.RestaurantStore {
	return m
}
