package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pangpangeats/pangpangeats-api/internal/api"
	apiMiddleware "github.com/pangpangeats/pangpangeats-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	tokenHandler := api.NewTokenHandler(app.userStore, app.jwtService, app.passwordVerifier)
	userHandler := api.NewUserHandler(app.userService)
	cardHandler := api.NewCardHandler(app.cardService)
	orderHandler := api.NewOrderHandler(app.orderService)
	restaurantHandler := api.NewRestaurantHandler(app.restaurantService, app.userService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Token endpoints (public)
		r.Post("/token", tokenHandler.Issue)
		r.Post("/token/refresh", tokenHandler.Refresh)
		r.Post("/token/verify", tokenHandler.Verify)

		// Registration is public; restaurants are browsable by anyone.
		r.Post("/users/register", userHandler.Register)
		r.Get("/restaurants", restaurantHandler.List)
		r.Get("/restaurants/{id}", restaurantHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/profile", userHandler.GetProfile)
			r.Patch("/users/profile", userHandler.UpdateProfile)
			r.Delete("/users/profile", userHandler.DeleteAccount)
			r.Post("/users/set_password", userHandler.SetPassword)

			r.Post("/credit-cards", cardHandler.Create)
			r.Get("/credit-cards", cardHandler.List)
			r.Get("/credit-cards/{id}", cardHandler.Get)
			r.Put("/credit-cards/{id}", cardHandler.Update)
			r.Patch("/credit-cards/{id}", cardHandler.Update)
			r.Delete("/credit-cards/{id}", cardHandler.Delete)

			r.Post("/orders", orderHandler.Create)
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Post("/orders/{id}/cancel", orderHandler.Cancel)

			r.Post("/restaurants", restaurantHandler.Create)
			r.Delete("/restaurants/{id}", restaurantHandler.Delete)
			r.Post("/restaurants/{id}/menus", restaurantHandler.AddMenuItem)
			r.Delete("/restaurants/{id}/menus/{menuID}", restaurantHandler.RemoveMenuItem)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
