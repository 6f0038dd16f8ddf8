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

// PostgresRestaurantStore implements the store.RestaurantStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRestaurantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRestaurantStore creates a new PostgreSQL implementation of
// the RestaurantStore interface.
func NewPostgresRestaurantStore(db store.DBTX, logger *slog.Logger) *PostgresRestaurantStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRestaurantStore{
		db:     db,
		logger: logger.With(slog.String("component", "restaurant_store")),
	}
}

// Ensure PostgresRestaurantStore implements store.RestaurantStore interface
var _ store.RestaurantStore = (*PostgresRestaurantStore)(nil)

const restaurantColumns = `id, owner_id, name, telephone_number,
	minimum_order_cost, minimum_delivery_cost, description, notice,
	created_at, updated_at`

// Create implements store.RestaurantStore.Create
func (s *PostgresRestaurantStore) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO restaurants (id, owner_id, name, telephone_number,
			minimum_order_cost, minimum_delivery_cost, description, notice,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		restaurant.ID,
		restaurant.OwnerID,
		restaurant.Name,
		restaurant.TelephoneNumber,
		restaurant.MinimumOrderCost,
		restaurant.MinimumDeliveryCost,
		restaurant.Description,
		restaurant.Notice,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("restaurant owner does not exist",
				slog.String("owner_id", restaurant.OwnerID.String()))
			return store.ErrInvalidEntity
		}

		log.Error("failed to create restaurant",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", restaurant.ID.String()))
		return err
	}

	log.Info("restaurant created",
		slog.String("restaurant_id", restaurant.ID.String()),
		slog.String("owner_id", restaurant.OwnerID.String()))
	return nil
}

// GetByID implements store.RestaurantStore.GetByID
func (s *PostgresRestaurantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM restaurants WHERE id = $1`, restaurantColumns)

	var restaurant domain.Restaurant
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.OwnerID,
		&restaurant.Name,
		&restaurant.TelephoneNumber,
		&restaurant.MinimumOrderCost,
		&restaurant.MinimumDeliveryCost,
		&restaurant.Description,
		&restaurant.Notice,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("restaurant not found", slog.String("restaurant_id", id.String()))
			return nil, store.ErrRestaurantNotFound
		}
		log.Error("failed to get restaurant by ID",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", id.String()))
		return nil, err
	}

	return &restaurant, nil
}

// List implements store.RestaurantStore.List
func (s *PostgresRestaurantStore) List(ctx context.Context) ([]*domain.Restaurant, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM restaurants ORDER BY created_at, id`, restaurantColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list restaurants", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	restaurants := make([]*domain.Restaurant, 0)
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(
			&restaurant.ID,
			&restaurant.OwnerID,
			&restaurant.Name,
			&restaurant.TelephoneNumber,
			&restaurant.MinimumOrderCost,
			&restaurant.MinimumDeliveryCost,
			&restaurant.Description,
			&restaurant.Notice,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		); err != nil {
			log.Error("failed to scan restaurant row", slog.String("error", err.Error()))
			return nil, err
		}
		restaurants = append(restaurants, &restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return restaurants, nil
}

// Delete implements store.RestaurantStore.Delete. Menu items go with the
// restaurant (cascade), and selections referencing those items keep
// existing with a cleared reference (set-null).
func (s *PostgresRestaurantStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clearQuery := `
		UPDATE selections SET menu_item_id = NULL
		WHERE menu_item_id IN (SELECT id FROM menu_items WHERE restaurant_id = $1)
	`
	if _, err := s.db.ExecContext(ctx, clearQuery, id); err != nil {
		log.Error("failed to clear menu references on selections",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", id.String()))
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE restaurant_id = $1`, id); err != nil {
		log.Error("failed to cascade menu items",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", id.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete restaurant",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrRestaurantNotFound
	}

	log.Info("restaurant deleted", slog.String("restaurant_id", id.String()))
	return nil
}

// CreateMenuItem implements store.RestaurantStore.CreateMenuItem
func (s *PostgresRestaurantStore) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Price,
		item.IsAvailable,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("menu item restaurant does not exist",
				slog.String("restaurant_id", item.RestaurantID.String()))
			return store.ErrInvalidEntity
		}

		log.Error("failed to create menu item",
			slog.String("error", err.Error()),
			slog.String("menu_item_id", item.ID.String()))
		return err
	}

	return nil
}

// GetMenuItem implements store.RestaurantStore.GetMenuItem
func (s *PostgresRestaurantStore) GetMenuItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, restaurant_id, name, description, price, is_available
		FROM menu_items WHERE id = $1
	`

	var item domain.MenuItem
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.IsAvailable,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("menu item not found", slog.String("menu_item_id", id.String()))
			return nil, store.ErrMenuItemNotFound
		}
		log.Error("failed to get menu item",
			slog.String("error", err.Error()),
			slog.String("menu_item_id", id.String()))
		return nil, err
	}

	return &item, nil
}

// ListMenuItems implements store.RestaurantStore.ListMenuItems
func (s *PostgresRestaurantStore) ListMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, restaurant_id, name, description, price, is_available
		FROM menu_items WHERE restaurant_id = $1 ORDER BY name, id
	`

	rows, err := s.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		log.Error("failed to list menu items",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", restaurantID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.IsAvailable,
		); err != nil {
			log.Error("failed to scan menu item row", slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteMenuItem implements store.RestaurantStore.DeleteMenuItem
func (s *PostgresRestaurantStore) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE selections SET menu_item_id = NULL WHERE menu_item_id = $1`, id); err != nil {
		log.Error("failed to clear menu references on selections",
			slog.String("error", err.Error()),
			slog.String("menu_item_id", id.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete menu item",
			slog.String("error", err.Error()),
			slog.String("menu_item_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrMenuItemNotFound
	}

	return nil
}

// WithTx implements store.RestaurantStore.WithTx
func (s *PostgresRestaurantStore) WithTx(tx *sql.Tx) store.RestaurantStore {
	return &PostgresRestaurantStore{
		db:     tx,
		logger: s.logger,
	}
}
