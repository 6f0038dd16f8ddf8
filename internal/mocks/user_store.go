package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, user *domain.User) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhoneNumberFn func(ctx context.Context, phoneNumber string) (*domain.User, error)
	UpdateFn           func(ctx context.Context, user *domain.User) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by phone number
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.Users[user.PhoneNumber]; exists {
		return store.ErrPhoneNumberExists
	}

	m.Users[user.PhoneNumber] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByPhoneNumber implements the UserStore interface
func (m *MockUserStore) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error) {
	if m.GetByPhoneNumberFn != nil {
		return m.GetByPhoneNumberFn(ctx, phoneNumber)
	}

	user, exists := m.Users[phoneNumber]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	for phone, existing := range m.Users {
		if existing.ID == user.ID {
			updated := *user
			updated.PhoneNumber = existing.PhoneNumber
			m.Users[phone] = &updated
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for phone, user := range m.Users {
		if user.ID == id {
			delete(m.Users, phone)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx implements the UserStore interface
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
