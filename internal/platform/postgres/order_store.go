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

// PostgresOrderStore implements the store.OrderStore interface using a
// PostgreSQL database as the storage backend. Orders and their selections
// are linked through the order_selections join table.
type PostgresOrderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the
// OrderStore interface.
func NewPostgresOrderStore(db store.DBTX, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

const orderColumns = `id, total_cost, is_paid, is_canceled, is_delivered,
	purchased_credit_card_id, request, created_at, updated_at`

// Create implements store.OrderStore.Create. The order row, its selection
// rows and the join rows are written in sequence; run it inside
// store.RunInTransaction for atomicity.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during create",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	orderQuery := `
		INSERT INTO orders (id, total_cost, is_paid, is_canceled, is_delivered,
			purchased_credit_card_id, request, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		orderQuery,
		order.ID,
		order.TotalCost,
		order.IsPaid,
		order.IsCanceled,
		order.IsDelivered,
		order.PurchasedCardID,
		order.Request,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("order references a missing row",
				slog.String("order_id", order.ID.String()))
			return store.ErrInvalidEntity
		}
		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	selectionQuery := `
		INSERT INTO selections (id, orderer_id, menu_item_id, amount, request,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	joinQuery := `INSERT INTO order_selections (order_id, selection_id) VALUES ($1, $2)`

	for _, selection := range order.Selections {
		if _, err := s.db.ExecContext(
			ctx,
			selectionQuery,
			selection.ID,
			selection.OrdererID,
			selection.MenuItemID,
			selection.Amount,
			selection.Request,
			selection.CreatedAt,
			selection.UpdatedAt,
		); err != nil {
			if isForeignKeyViolation(err) {
				log.Warn("selection references a missing row",
					slog.String("selection_id", selection.ID.String()))
				return store.ErrInvalidEntity
			}
			log.Error("failed to create selection",
				slog.String("error", err.Error()),
				slog.String("selection_id", selection.ID.String()))
			return err
		}

		if _, err := s.db.ExecContext(ctx, joinQuery, order.ID, selection.ID); err != nil {
			log.Error("failed to link selection to order",
				slog.String("error", err.Error()),
				slog.String("order_id", order.ID.String()),
				slog.String("selection_id", selection.ID.String()))
			return err
		}
	}

	log.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.Int("selections", len(order.Selections)))
	return nil
}

func scanOrderRow(row *sql.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.TotalCost,
		&order.IsPaid,
		&order.IsCanceled,
		&order.IsDelivered,
		&order.PurchasedCardID,
		&order.Request,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *PostgresOrderStore) loadSelections(ctx context.Context, orderID uuid.UUID) ([]*domain.Selection, error) {
	query := `
		SELECT s.id, s.orderer_id, s.menu_item_id, s.amount, s.request,
			s.created_at, s.updated_at
		FROM selections s
		JOIN order_selections os ON os.selection_id = s.id
		WHERE os.order_id = $1
		ORDER BY s.created_at, s.id
	`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	selections := make([]*domain.Selection, 0)
	for rows.Next() {
		var selection domain.Selection
		if err := rows.Scan(
			&selection.ID,
			&selection.OrdererID,
			&selection.MenuItemID,
			&selection.Amount,
			&selection.Request,
			&selection.CreatedAt,
			&selection.UpdatedAt,
		); err != nil {
			return nil, err
		}
		selections = append(selections, &selection)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return selections, nil
}

// GetForOrderer implements store.OrderStore.GetForOrderer. The orderer
// filter is part of the query, so a foreign order scans as no rows at all.
func (s *PostgresOrderStore) GetForOrderer(ctx context.Context, ordererID, id uuid.UUID) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT DISTINCT o.%s
		FROM orders o
		JOIN order_selections os ON os.order_id = o.id
		JOIN selections s ON s.id = os.selection_id
		WHERE o.id = $1 AND s.orderer_id = $2
	`, orderColumnsAliased())

	order, err := scanOrderRow(s.db.QueryRowContext(ctx, query, id, ordererID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("order not found in orderer's set",
				slog.String("order_id", id.String()),
				slog.String("orderer_id", ordererID.String()))
			return nil, store.ErrOrderNotFound
		}
		log.Error("failed to get order for orderer",
			slog.String("error", err.Error()),
			slog.String("order_id", id.String()))
		return nil, err
	}

	order.Selections, err = s.loadSelections(ctx, order.ID)
	if err != nil {
		log.Error("failed to load order selections",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return nil, err
	}

	return order, nil
}

// GetByID implements store.OrderStore.GetByID
func (s *PostgresOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrderRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("order not found", slog.String("order_id", id.String()))
			return nil, store.ErrOrderNotFound
		}
		log.Error("failed to get order by ID",
			slog.String("error", err.Error()),
			slog.String("order_id", id.String()))
		return nil, err
	}

	order.Selections, err = s.loadSelections(ctx, order.ID)
	if err != nil {
		log.Error("failed to load order selections",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return nil, err
	}

	return order, nil
}

// ListByOrderer implements store.OrderStore.ListByOrderer
func (s *PostgresOrderStore) ListByOrderer(ctx context.Context, ordererID uuid.UUID) ([]*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT DISTINCT o.%s
		FROM orders o
		JOIN order_selections os ON os.order_id = o.id
		JOIN selections s ON s.id = os.selection_id
		WHERE s.orderer_id = $1
		ORDER BY o.created_at, o.id
	`, orderColumnsAliased())

	rows, err := s.db.QueryContext(ctx, query, ordererID)
	if err != nil {
		log.Error("failed to list orders",
			slog.String("error", err.Error()),
			slog.String("orderer_id", ordererID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.TotalCost,
			&order.IsPaid,
			&order.IsCanceled,
			&order.IsDelivered,
			&order.PurchasedCardID,
			&order.Request,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", slog.String("error", err.Error()))
			return nil, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		order.Selections, err = s.loadSelections(ctx, order.ID)
		if err != nil {
			log.Error("failed to load order selections",
				slog.String("error", err.Error()),
				slog.String("order_id", order.ID.String()))
			return nil, err
		}
	}

	return orders, nil
}

// Update implements store.OrderStore.Update. Only the order row is
// written; selections are immutable once stored.
func (s *PostgresOrderStore) Update(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE orders
		SET is_paid = $1, is_canceled = $2, is_delivered = $3,
			purchased_credit_card_id = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		order.IsPaid,
		order.IsCanceled,
		order.IsDelivered,
		order.PurchasedCardID,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		log.Error("failed to update order",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("order not found for update",
			slog.String("order_id", order.ID.String()))
		return store.ErrOrderNotFound
	}

	return nil
}

// WithTx implements store.OrderStore.WithTx
func (s *PostgresOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &PostgresOrderStore{
		db:     tx,
		logger: s.logger,
	}
}

// orderColumnsAliased qualifies the order column list with the "o" alias
// for joined queries.
func orderColumnsAliased() string {
	return `id, o.total_cost, o.is_paid, o.is_canceled, o.is_delivered,
		o.purchased_credit_card_id, o.request, o.created_at, o.updated_at`
}
