package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pangpangeats/pangpangeats-api/internal/config"
	"github.com/pangpangeats/pangpangeats-api/internal/platform/postgres"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	cardStore       store.CardStore
	restaurantStore store.RestaurantStore
	orderStore      store.OrderStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	userService       service.UserService
	cardService       service.CardService
	orderService      service.OrderService
	restaurantService service.RestaurantService
}

// newApplication creates an application instance with all dependencies
// initialized, wiring the stores and services onto one database
// connection.
func newApplication(cfg *config.Config) (*application, error) {
	logger := slog.Default()

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	verifier := auth.NewBcryptVerifier()
	policy := auth.NewDefaultPasswordPolicy()

	userStore := postgres.NewPostgresUserStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)
	restaurantStore := postgres.NewPostgresRestaurantStore(db, logger)
	orderStore := postgres.NewPostgresOrderStore(db, logger)

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,

		userStore:       userStore,
		cardStore:       cardStore,
		restaurantStore: restaurantStore,
		orderStore:      orderStore,

		jwtService:       jwtService,
		passwordVerifier: verifier,

		userService:       service.NewUserService(userStore, verifier, policy, db, logger),
		cardService:       service.NewCardService(cardStore, db, logger),
		orderService:      service.NewOrderService(orderStore, cardStore, restaurantStore, db, logger),
		restaurantService: service.NewRestaurantService(restaurantStore, db, logger),
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
