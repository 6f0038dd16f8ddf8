package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/platform/logger"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// UserService provides account operations: registration, superuser
// provisioning, profile reads/updates and password changes.
type UserService interface {
	// Register creates a client account. The phone number must be numeric,
	// 9 to 11 digits, and unused; the password must pass the strength
	// policy. The stored password is hashed.
	Register(ctx context.Context, phoneNumber, name, password string) (*domain.User, error)

	// CreateSuperuser creates an account with every privilege flag set and
	// the phone number marked verified. Same validation as Register.
	CreateSuperuser(ctx context.Context, phoneNumber, name, password string) (*domain.User, error)

	// GetProfile retrieves the requester's own account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies the profile update rules: only the name is
	// mutable. A submitted phone number is silently ignored, not rejected.
	UpdateProfile(ctx context.Context, userID uuid.UUID, name *string) (*domain.User, error)

	// SetPassword replaces the user's password after checking the strength
	// policy. The old password stops authenticating immediately.
	SetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error

	// DeleteAccount removes the requester's own account. The delete is
	// refused with store.ErrDeleteProtected while order history or
	// restaurants reference the account; owned credit cards are removed
	// with it.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	policy    auth.PasswordPolicy
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService. db may be nil in tests that
// stub the store; it is only used to open the account deletion transaction.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	policy auth.PasswordPolicy,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		policy:    policy,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(ctx context.Context, phoneNumber, name, password string) (*domain.User, error) {
	return s.create(ctx, phoneNumber, name, password, false)
}

// CreateSuperuser implements UserService.CreateSuperuser.
func (s *UserServiceImpl) CreateSuperuser(ctx context.Context, phoneNumber, name, password string) (*domain.User, error) {
	return s.create(ctx, phoneNumber, name, password, true)
}

func (s *UserServiceImpl) create(
	ctx context.Context,
	phoneNumber, name, password string,
	superuser bool,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.policy.Validate(password); err != nil {
		log.Debug("password rejected by policy",
			slog.String("phone_number", phoneNumber))
		return nil, err
	}

	var user *domain.User
	var err error
	if superuser {
		user, err = domain.NewSuperuser(phoneNumber, name)
	} else {
		user, err = domain.NewUser(phoneNumber, name)
	}
	if err != nil {
		return nil, err
	}

	user.HashedPassword, err = s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewServiceError("user_service", "register", "failed to hash password", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("phone number already registered",
				slog.String("phone_number", phoneNumber))
		} else {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, nil
}

// GetProfile implements UserService.GetProfile.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile. Only the name is
// mutable; the stored phone number is never changed by this path even if
// the request carried one.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, name *string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name == nil {
		return user, nil
	}

	user.Name = *name
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Debug("profile updated", slog.String("user_id", userID.String()))
	return user, nil
}

// SetPassword implements UserService.SetPassword.
func (s *UserServiceImpl) SetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.policy.Validate(newPassword); err != nil {
		return err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.HashedPassword, err = s.hasher.Hash(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return NewServiceError("user_service", "set_password", "failed to hash password", err)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		log.Error("failed to store new password",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("password changed", slog.String("user_id", userID.String()))
	return nil
}

// DeleteAccount implements UserService.DeleteAccount. The protect check
// and the card cascade are multiple statements, so they run in one
// transaction.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var err error
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.userStore.WithTx(tx).Delete(ctx, userID)
		})
	} else {
		err = s.userStore.Delete(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, store.ErrDeleteProtected) {
			log.Debug("account delete refused: dependent records exist",
				slog.String("user_id", userID.String()))
		} else {
			log.Error("failed to delete account",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return err
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))
	return nil
}
