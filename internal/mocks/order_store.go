package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// MockOrderStore implements store.OrderStore for testing
type MockOrderStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, order *domain.Order) error
	GetForOrdererFn func(ctx context.Context, ordererID, id uuid.UUID) (*domain.Order, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByOrdererFn func(ctx context.Context, ordererID uuid.UUID) ([]*domain.Order, error)
	UpdateFn        func(ctx context.Context, order *domain.Order) error

	// Data for default implementation. Order preserves insertion.
	Orders []*domain.Order
}

// NewMockOrderStore creates a new mock store with initialized defaults
func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{}
}

var _ store.OrderStore = (*MockOrderStore)(nil)

// Create implements the OrderStore interface
func (m *MockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, order)
	}

	m.Orders = append(m.Orders, order)
	return nil
}

// GetForOrderer implements the OrderStore interface
func (m *MockOrderStore) GetForOrderer(ctx context.Context, ordererID, id uuid.UUID) (*domain.Order, error) {
	if m.GetForOrdererFn != nil {
		return m.GetForOrdererFn(ctx, ordererID, id)
	}

	for _, order := range m.Orders {
		if order.ID == id && order.OrdererID() == ordererID {
			return order, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

// GetByID implements the OrderStore interface
func (m *MockOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, order := range m.Orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

// ListByOrderer implements the OrderStore interface
func (m *MockOrderStore) ListByOrderer(ctx context.Context, ordererID uuid.UUID) ([]*domain.Order, error) {
	if m.ListByOrdererFn != nil {
		return m.ListByOrdererFn(ctx, ordererID)
	}

	orders := make([]*domain.Order, 0)
	for _, order := range m.Orders {
		if order.OrdererID() == ordererID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// Update implements the OrderStore interface
func (m *MockOrderStore) Update(ctx context.Context, order *domain.Order) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, order)
	}

	for i, existing := range m.Orders {
		if existing.ID == order.ID {
			m.Orders[i] = order
			return nil
		}
	}
	return store.ErrOrderNotFound
}

// WithTx implements the OrderStore interface
func (m *MockOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return m
}
