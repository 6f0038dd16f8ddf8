package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
)

// OrderStore defines the interface for order and selection persistence.
// Orders are read through the orderer's filtered set only; there is no
// global listing.
type OrderStore interface {
	// Create saves an order together with its selections. Callers should
	// run it inside RunInTransaction so the order and its selections are
	// stored atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetForOrderer retrieves an order by ID within the orderer's filtered
	// set, selections included.
	// Returns ErrOrderNotFound if the order does not exist or belongs to
	// another user.
	GetForOrderer(ctx context.Context, ordererID, id uuid.UUID) (*domain.Order, error)

	// GetByID retrieves an order by its unique ID regardless of orderer.
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListByOrderer returns all orders placed by ordererID in insertion
	// order, selections included.
	ListByOrderer(ctx context.Context, ordererID uuid.UUID) ([]*domain.Order, error)

	// Update writes the order's status flags and timestamps.
	// Returns ErrOrderNotFound if the order does not exist.
	Update(ctx context.Context, order *domain.Order) error

	// WithTx returns a new OrderStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) OrderStore
}
