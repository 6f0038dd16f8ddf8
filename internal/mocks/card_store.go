package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, card *domain.CreditCard) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.CreditCard, error)
	GetForOwnerFn func(ctx context.Context, ownerID, id uuid.UUID) (*domain.CreditCard, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.CreditCard, error)
	UpdateAliasFn func(ctx context.Context, id uuid.UUID, alias string) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation. Order preserves insertion.
	Cards []*domain.CreditCard
}

// NewMockCardStore creates a new mock store with initialized defaults
func NewMockCardStore() *MockCardStore {
	return &MockCardStore{}
}

var _ store.CardStore = (*MockCardStore)(nil)

// Create implements the CardStore interface
func (m *MockCardStore) Create(ctx context.Context, card *domain.CreditCard) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}

	m.Cards = append(m.Cards, card)
	return nil
}

// GetByID implements the CardStore interface
func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditCard, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, card := range m.Cards {
		if card.ID == id {
			return card, nil
		}
	}
	return nil, store.ErrCardNotFound
}

// GetForOwner implements the CardStore interface
func (m *MockCardStore) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.CreditCard, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, ownerID, id)
	}

	for _, card := range m.Cards {
		if card.ID == id && card.OwnerID == ownerID {
			return card, nil
		}
	}
	return nil, store.ErrCardNotFound
}

// ListByOwner implements the CardStore interface
func (m *MockCardStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CreditCard, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	cards := make([]*domain.CreditCard, 0)
	for _, card := range m.Cards {
		if card.OwnerID == ownerID {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// UpdateAlias implements the CardStore interface
func (m *MockCardStore) UpdateAlias(ctx context.Context, id uuid.UUID, alias string) error {
	if m.UpdateAliasFn != nil {
		return m.UpdateAliasFn(ctx, id, alias)
	}

	for _, card := range m.Cards {
		if card.ID == id {
			card.Alias = alias
			return nil
		}
	}
	return store.ErrCardNotFound
}

// Delete implements the CardStore interface
func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, card := range m.Cards {
		if card.ID == id {
			m.Cards = append(m.Cards[:i], m.Cards[i+1:]...)
			return nil
		}
	}
	return store.ErrCardNotFound
}

// WithTx implements the CardStore interface
func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}
