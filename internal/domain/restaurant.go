package domain

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant field bounds.
const (
	RestaurantNameMaxLen = 40
	MenuItemNameMaxLen   = 20
	MenuItemDescMaxLen   = 100
)

// Restaurant is a store operated by a STORE_OWNER user. The owner reference
// is delete-protected: the account cannot be removed while the restaurant
// exists.
type Restaurant struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner"`
	Name                string    `json:"name"`
	TelephoneNumber     string    `json:"telephone_number"`
	MinimumOrderCost    int       `json:"minimum_order_cost"`
	MinimumDeliveryCost int       `json:"minimum_delivery_cost"`
	Description         string    `json:"description"`
	Notice              string    `json:"notice,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewRestaurant creates a restaurant owned by ownerID and validates it.
func NewRestaurant(
	ownerID uuid.UUID,
	name, telephoneNumber string,
	minimumOrderCost, minimumDeliveryCost int,
	description, notice string,
) (*Restaurant, error) {
	now := time.Now().UTC()
	restaurant := &Restaurant{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		Name:                name,
		TelephoneNumber:     telephoneNumber,
		MinimumOrderCost:    minimumOrderCost,
		MinimumDeliveryCost: minimumDeliveryCost,
		Description:         description,
		Notice:              notice,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := restaurant.Validate(); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// Validate checks if the Restaurant has valid data.
func (r *Restaurant) Validate() error {
	if r.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if r.OwnerID == uuid.Nil {
		return NewValidationError("owner", "cannot be empty")
	}

	if r.Name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if len([]rune(r.Name)) > RestaurantNameMaxLen {
		return NewValidationError("name", "must be at most 40 characters")
	}

	// Same shape as a user's phone number: 02-style landlines up to mobiles.
	if len(r.TelephoneNumber) < PhoneNumberMinLen ||
		len(r.TelephoneNumber) > PhoneNumberMaxLen ||
		!isNumeric(r.TelephoneNumber) {
		return NewValidationError("telephone_number", "must be 9 to 11 digits")
	}

	if r.MinimumOrderCost < 0 {
		return NewValidationError("minimum_order_cost", "must not be negative")
	}
	if r.MinimumDeliveryCost < 0 {
		return NewValidationError("minimum_delivery_cost", "must not be negative")
	}

	return nil
}

// MenuItem is one dish offered by a restaurant. It is cascade-deleted with
// its restaurant; selections referencing it are set to null instead.
type MenuItem struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`
	IsAvailable  bool      `json:"is_available"`
}

// NewMenuItem creates a menu item for the given restaurant and validates it.
func NewMenuItem(restaurantID uuid.UUID, name, description string, price int) (*MenuItem, error) {
	item := &MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		Description:  description,
		Price:        price,
		IsAvailable:  true,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the MenuItem has valid data.
func (m *MenuItem) Validate() error {
	if m.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if m.RestaurantID == uuid.Nil {
		return NewValidationError("restaurant", "cannot be empty")
	}
	if m.Name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if len([]rune(m.Name)) > MenuItemNameMaxLen {
		return NewValidationError("name", "must be at most 20 characters")
	}
	if len([]rune(m.Description)) > MenuItemDescMaxLen {
		return NewValidationError("description", "must be at most 100 characters")
	}
	if m.Price <= 0 {
		return NewValidationError("price", "must be positive")
	}
	return nil
}
