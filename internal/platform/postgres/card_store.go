package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/platform/logger"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `id, owner_id, owner_first_name, owner_last_name, alias,
	card_number, cvc, expiry_year, expiry_month, created_at, updated_at`

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.CreditCard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO credit_cards (id, owner_id, owner_first_name, owner_last_name,
			alias, card_number, cvc, expiry_year, expiry_month, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.OwnerID,
		card.OwnerFirstName,
		card.OwnerLastName,
		card.Alias,
		card.CardNumber,
		card.CVC,
		card.ExpiryYear,
		card.ExpiryMonth,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("card owner does not exist",
				slog.String("owner_id", card.OwnerID.String()))
			return store.ErrInvalidEntity
		}

		log.Error("failed to create credit card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	log.Info("credit card created",
		slog.String("card_id", card.ID.String()),
		slog.String("owner_id", card.OwnerID.String()))
	return nil
}

func scanCard(row *sql.Row) (*domain.CreditCard, error) {
	var card domain.CreditCard
	err := row.Scan(
		&card.ID,
		&card.OwnerID,
		&card.OwnerFirstName,
		&card.OwnerLastName,
		&card.Alias,
		&card.CardNumber,
		&card.CVC,
		&card.ExpiryYear,
		&card.ExpiryMonth,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM credit_cards WHERE id = $1`, cardColumns)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, err
	}

	return card, nil
}

// GetForOwner implements store.CardStore.GetForOwner. The owner filter is
// part of the query, so a foreign card scans as no rows at all.
func (s *PostgresCardStore) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM credit_cards WHERE id = $1 AND owner_id = $2`, cardColumns)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found in owner's set",
				slog.String("card_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card for owner",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, err
	}

	return card, nil
}

// ListByOwner implements store.CardStore.ListByOwner
func (s *PostgresCardStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CreditCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM credit_cards WHERE owner_id = $1 ORDER BY created_at, id`, cardColumns)

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.CreditCard, 0)
	for rows.Next() {
		var card domain.CreditCard
		if err := rows.Scan(
			&card.ID,
			&card.OwnerID,
			&card.OwnerFirstName,
			&card.OwnerLastName,
			&card.Alias,
			&card.CardNumber,
			&card.CVC,
			&card.ExpiryYear,
			&card.ExpiryMonth,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			log.Error("failed to scan card row",
				slog.String("error", err.Error()),
				slog.String("owner_id", ownerID.String()))
			return nil, err
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// UpdateAlias implements store.CardStore.UpdateAlias
func (s *PostgresCardStore) UpdateAlias(ctx context.Context, id uuid.UUID, alias string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE credit_cards SET alias = $1, updated_at = NOW() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, alias, id)
	if err != nil {
		log.Error("failed to update card alias",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("card not found for alias update",
			slog.String("card_id", id.String()))
		return store.ErrCardNotFound
	}

	return nil
}

// Delete implements store.CardStore.Delete. Orders that paid with the card
// keep existing with a cleared reference (set-null policy).
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE orders SET purchased_credit_card_id = NULL WHERE purchased_credit_card_id = $1`, id); err != nil {
		log.Error("failed to clear card references on orders",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	log.Info("credit card deleted", slog.String("card_id", id.String()))
	return nil
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
