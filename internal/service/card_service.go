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

// CardService provides owner-scoped credit card operations.
//
// Ownership policy, applied uniformly: List and Get go through owner-
// filtered queries, so a card belonging to someone else surfaces as
// ErrCardNotFound (404). UpdateAlias and Delete load by bare ID and return
// ErrNotOwned (403) when the card exists under another owner.
type CardService interface {
	// Create validates and stores a new card. The owner is always the
	// requester's resolved identity; owner fields in request bodies carry
	// no authority.
	Create(ctx context.Context, ownerID uuid.UUID, params CreateCardParams) (*domain.CreditCard, error)

	// List returns the requester's own cards, never a global listing.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.CreditCard, error)

	// Get returns one of the requester's own cards.
	Get(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.CreditCard, error)

	// UpdateAlias writes the only mutable field. Other submitted fields
	// were already discarded by the handler's request contract.
	UpdateAlias(ctx context.Context, requesterID, cardID uuid.UUID, alias string) (*domain.CreditCard, error)

	// Delete removes one of the requester's cards; orders keep living with
	// a cleared card reference.
	Delete(ctx context.Context, requesterID, cardID uuid.UUID) error
}

// CreateCardParams carries the client-writable card fields.
type CreateCardParams struct {
	OwnerFirstName string
	OwnerLastName  string
	Alias          string
	CardNumber     string
	CVC            string
	ExpiryYear     int
	ExpiryMonth    int
}

// CardServiceImpl implements the CardService interface.
type CardServiceImpl struct {
	cardStore store.CardStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewCardService creates a new CardService. db may be nil in tests that
// stub the store; it is only used to open the deletion transaction.
func NewCardService(cardStore store.CardStore, db *sql.DB, logger *slog.Logger) *CardServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &CardServiceImpl{
		cardStore: cardStore,
		db:        db,
		logger:    logger.With(slog.String("component", "card_service")),
	}
}

// Create implements CardService.Create.
func (s *CardServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, params CreateCardParams) (*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCreditCard(
		ownerID,
		params.OwnerFirstName,
		params.OwnerLastName,
		params.Alias,
		params.CardNumber,
		params.CVC,
		params.ExpiryYear,
		params.ExpiryMonth,
	)
	if err != nil {
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return card, nil
}

// List implements CardService.List.
func (s *CardServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.CreditCard, error) {
	return s.cardStore.ListByOwner(ctx, ownerID)
}

// Get implements CardService.Get. The owner-filtered read makes a foreign
// card indistinguishable from a missing one.
func (s *CardServiceImpl) Get(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.CreditCard, error) {
	return s.cardStore.GetForOwner(ctx, ownerID, cardID)
}

// UpdateAlias implements CardService.UpdateAlias with the explicit
// mutate-time ownership check.
func (s *CardServiceImpl) UpdateAlias(ctx context.Context, requesterID, cardID uuid.UUID, alias string) (*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.OwnerID != requesterID {
		log.Debug("alias update refused: requester is not the owner",
			slog.String("card_id", cardID.String()),
			slog.String("requester_id", requesterID.String()))
		return nil, ErrNotOwned
	}

	if err := card.UpdateAlias(alias); err != nil {
		return nil, err
	}

	if err := s.cardStore.UpdateAlias(ctx, cardID, alias); err != nil {
		log.Error("failed to update card alias",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	return card, nil
}

// Delete implements CardService.Delete with the explicit mutate-time
// ownership check.
func (s *CardServiceImpl) Delete(ctx context.Context, requesterID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card.OwnerID != requesterID {
		log.Debug("delete refused: requester is not the owner",
			slog.String("card_id", cardID.String()),
			slog.String("requester_id", requesterID.String()))
		return ErrNotOwned
	}

	// Clearing order references and removing the card are separate
	// statements, so they run in one transaction.
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.cardStore.WithTx(tx).Delete(ctx, cardID)
		})
	} else {
		err = s.cardStore.Delete(ctx, cardID)
	}
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return err
	}

	log.Info("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("owner_id", requesterID.String()))
	return nil
}
