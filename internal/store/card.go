package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
)

// CardStore defines the interface for credit card persistence.
//
// Read paths are owner-filtered: a card owned by someone else is
// indistinguishable from a missing one (ErrCardNotFound). Mutation paths
// load by bare ID so the service layer can distinguish "absent" from
// "owned by another user".
type CardStore interface {
	// Create saves a new credit card.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, card *domain.CreditCard) error

	// GetByID retrieves a card by its unique ID regardless of owner.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditCard, error)

	// GetForOwner retrieves a card by ID within the owner's filtered set.
	// Returns ErrCardNotFound if the card does not exist or belongs to
	// another user.
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.CreditCard, error)

	// ListByOwner returns all cards owned by ownerID in insertion order.
	// Never returns another user's cards; an empty result is a non-nil
	// empty slice.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CreditCard, error)

	// UpdateAlias writes the card's alias, the only mutable field.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateAlias(ctx context.Context, id uuid.UUID, alias string) error

	// Delete removes a card, clearing purchased-card references on orders
	// (set-null policy) before the row is deleted.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) CardStore
}
