package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// TokenRequest defines the payload for the token issue endpoint.
type TokenRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password"     validate:"required"`
}

// TokenResponse defines the successful response for the token issue
// endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint. Only a new access token is issued; the refresh token
// keeps its original lifetime.
type RefreshTokenResponse struct {
	AccessToken string `json:"access"`
}

// VerifyTokenRequest defines the payload for the token verify endpoint.
type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterRequest defines the payload for the user registration endpoint.
// Phone number and password rules are enforced by the domain and the
// password policy; only presence is checked here.
type RegisterRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Name        string `json:"name"         validate:"required"`
	Password    string `json:"password"     validate:"required"`
}

// UpdateProfileRequest defines the payload for the profile update
// endpoint. A submitted phone_number is accepted and ignored, never
// rejected.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// SetPasswordRequest defines the payload for the password change endpoint.
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserResponse defines the user representation returned by the API.
// The hashed password and privilege flags never leave the server.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	IsVerified  bool      `json:"is_verified"`
	DateJoined  time.Time `json:"date_joined"`
}

// CreateCardRequest defines the payload for registering a credit card.
// Any owner field in the body carries no authority; the owner is always
// the authenticated requester.
type CreateCardRequest struct {
	OwnerFirstName string `json:"owner_first_name" validate:"required"`
	OwnerLastName  string `json:"owner_last_name"  validate:"required"`
	Alias          string `json:"alias"`
	CardNumber     string `json:"card_number"      validate:"required"`
	CVC            string `json:"cvc"              validate:"required"`
	ExpiryYear     int    `json:"expiry_year"      validate:"required"`
	ExpiryMonth    int    `json:"expiry_month"     validate:"required"`
}

// UpdateCardRequest defines the payload for the card update endpoint.
// The alias is the only mutable field; anything else in the body is
// discarded by this contract.
type UpdateCardRequest struct {
	Alias string `json:"alias" validate:"required"`
}

// CardResponse defines the card representation returned by the API.
// The card number is masked and the CVC never leaves the server.
type CardResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerFirstName string    `json:"owner_first_name"`
	OwnerLastName  string    `json:"owner_last_name"`
	Alias          string    `json:"alias,omitempty"`
	CardNumber     string    `json:"card_number"`
	ExpiryYear     int       `json:"expiry_year"`
	ExpiryMonth    int       `json:"expiry_month"`
	CreatedAt      time.Time `json:"created_at"`
}

// SelectionRequest is one requested order line.
type SelectionRequest struct {
	MenuItemID uuid.UUID `json:"menu_item" validate:"required"`
	Amount     int       `json:"amount"    validate:"required,min=1"`
	Request    string    `json:"request"`
}

// CreateOrderRequest defines the payload for placing an order.
type CreateOrderRequest struct {
	Selections      []SelectionRequest `json:"selections"             validate:"required,min=1,dive"`
	PurchasedCardID *uuid.UUID         `json:"purchased_credit_card"`
	Request         string             `json:"request"`
}

// SelectionResponse is one order line as returned by the API.
type SelectionResponse struct {
	ID         uuid.UUID  `json:"id"`
	MenuItemID *uuid.UUID `json:"menu_item"`
	Amount     int        `json:"amount"`
	Request    string     `json:"request,omitempty"`
}

// OrderResponse defines the order representation returned by the API.
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Selections      []SelectionResponse `json:"selections"`
	TotalCost       int                 `json:"total_cost"`
	IsPaid          bool                `json:"is_paid"`
	IsCanceled      bool                `json:"is_canceled"`
	IsDelivered     bool                `json:"is_delivered"`
	PurchasedCardID *uuid.UUID          `json:"purchased_credit_card"`
	Request         string              `json:"request,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// CreateRestaurantRequest defines the payload for opening a restaurant.
type CreateRestaurantRequest struct {
	Name                string `json:"name"                  validate:"required"`
	TelephoneNumber     string `json:"telephone_number"      validate:"required"`
	MinimumOrderCost    int    `json:"minimum_order_cost"    validate:"min=0"`
	MinimumDeliveryCost int    `json:"minimum_delivery_cost" validate:"min=0"`
	Description         string `json:"description"`
	Notice              string `json:"notice"`
}

// RestaurantResponse defines the restaurant representation returned by the
// API.
type RestaurantResponse struct {
	ID                  uuid.UUID          `json:"id"`
	Name                string             `json:"name"`
	TelephoneNumber     string             `json:"telephone_number"`
	MinimumOrderCost    int                `json:"minimum_order_cost"`
	MinimumDeliveryCost int                `json:"minimum_delivery_cost"`
	Description         string             `json:"description"`
	Notice              string             `json:"notice,omitempty"`
	Menus               []MenuItemResponse `json:"menus,omitempty"`
}

// CreateMenuItemRequest defines the payload for adding a menu item.
type CreateMenuItemRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Price       int    `json:"price"       validate:"required,min=1"`
}

// MenuItemResponse defines the menu item representation returned by the
// API.
type MenuItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"`
	IsAvailable bool      `json:"is_available"`
}
