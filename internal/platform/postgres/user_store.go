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

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, phone_number, name, role, hashed_password,
			is_active, is_verified, is_admin, is_staff, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.PhoneNumber,
		user.Name,
		user.Role,
		user.HashedPassword,
		user.IsActive,
		user.IsVerified,
		user.IsAdmin,
		user.IsStaff,
		user.IsSuperuser,
		user.DateJoined,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("phone number already taken",
				slog.String("phone_number", user.PhoneNumber))
			return store.ErrPhoneNumberExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

const userColumns = `id, phone_number, name, role, hashed_password,
	is_active, is_verified, is_admin, is_staff, is_superuser, date_joined`

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.PhoneNumber,
		&user.Name,
		&role,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsVerified,
		&user.IsAdmin,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.UserRole(role)
	return &user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByPhoneNumber implements store.UserStore.GetByPhoneNumber
func (s *PostgresUserStore) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE phone_number = $1`, userColumns)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by phone number")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by phone number",
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// Update implements store.UserStore.Update. The phone number column is
// deliberately absent from the SET list: the stored value is never changed
// by this path.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		UPDATE users
		SET name = $1, role = $2, hashed_password = $3,
			is_active = $4, is_verified = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Role,
		user.HashedPassword,
		user.IsActive,
		user.IsVerified,
		user.ID,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("user not found for update",
			slog.String("user_id", user.ID.String()))
		return store.ErrUserNotFound
	}

	return nil
}

// Delete implements store.UserStore.Delete, applying the relation delete
// policies: the delete is refused while selections or restaurants
// reference the account (protect), then owned credit cards go with it
// (cascade).
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var protectedCount int
	protectQuery := `
		SELECT (SELECT COUNT(*) FROM selections WHERE orderer_id = $1)
		     + (SELECT COUNT(*) FROM restaurants WHERE owner_id = $1)
	`
	if err := s.db.QueryRowContext(ctx, protectQuery, id).Scan(&protectedCount); err != nil {
		log.Error("failed to count protected references",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}
	if protectedCount > 0 {
		log.Debug("user delete refused by protect policy",
			slog.String("user_id", id.String()),
			slog.Int("protected_references", protectedCount))
		return store.ErrDeleteProtected
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE owner_id = $1`, id); err != nil {
		log.Error("failed to cascade credit cards",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}
