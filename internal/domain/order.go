package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order field bounds.
const (
	SelectionRequestMaxLen = 100
	OrderRequestMaxLen     = 50
)

// Selection is one line item of an order: a menu item, an amount, and a
// free-text request. The orderer reference is delete-protected; the menu
// reference is cleared when the menu or its restaurant is deleted, so the
// order history survives.
type Selection struct {
	ID         uuid.UUID  `json:"id"`
	OrdererID  uuid.UUID  `json:"orderer"`
	MenuItemID *uuid.UUID `json:"menu_item"` // nil once the menu is gone
	Amount     int        `json:"amount"`
	Request    string     `json:"request,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewSelection creates a selection for ordererID referencing menuItemID.
// The menu reference is required at creation; it only becomes nil later
// through the set-null delete policy.
func NewSelection(ordererID, menuItemID uuid.UUID, amount int, request string) (*Selection, error) {
	now := time.Now().UTC()
	menuID := menuItemID
	selection := &Selection{
		ID:         uuid.New(),
		OrdererID:  ordererID,
		MenuItemID: &menuID,
		Amount:     amount,
		Request:    request,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := selection.Validate(); err != nil {
		return nil, err
	}

	return selection, nil
}

// Validate checks if the Selection has valid data.
func (s *Selection) Validate() error {
	if s.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if s.OrdererID == uuid.Nil {
		return NewValidationError("orderer", "cannot be empty")
	}
	if s.MenuItemID != nil && *s.MenuItemID == uuid.Nil {
		return NewValidationError("menu_item", "cannot be the nil UUID")
	}
	if s.Amount < 1 {
		return NewValidationError("amount", "must be at least 1")
	}
	if len([]rune(s.Request)) > SelectionRequestMaxLen {
		return NewValidationError("request", "must be at most 100 characters")
	}
	return nil
}

// Order aggregates one or more selections. The minimum-one-selection rule
// is not a storage constraint; it is enforced here and at the creation
// boundary in the order service. The purchased card reference is cleared
// when the card is deleted; the order itself survives.
type Order struct {
	ID              uuid.UUID    `json:"id"`
	Selections      []*Selection `json:"selections"`
	TotalCost       int          `json:"total_cost"`
	IsPaid          bool         `json:"is_paid"`
	IsCanceled      bool         `json:"is_canceled"`
	IsDelivered     bool         `json:"is_delivered"`
	PurchasedCardID *uuid.UUID   `json:"purchased_credit_card"` // nil once the card is gone
	Request         string       `json:"request,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewOrder creates an order over the given selections. totalCost is derived
// by the caller from the menu prices at order time; it is stored, not
// recomputed, so later menu price changes do not rewrite history.
func NewOrder(selections []*Selection, totalCost int, purchasedCardID *uuid.UUID, request string) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		ID:              uuid.New(),
		Selections:      selections,
		TotalCost:       totalCost,
		PurchasedCardID: purchasedCardID,
		Request:         request,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate checks if the Order has valid data, including the minimum-one-
// selection invariant and that every selection belongs to the same orderer.
func (o *Order) Validate() error {
	if o.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if len(o.Selections) == 0 {
		return NewValidationError("selections", "an order needs at least one selection")
	}

	orderer := o.Selections[0].OrdererID
	for _, sel := range o.Selections {
		if err := sel.Validate(); err != nil {
			return err
		}
		if sel.OrdererID != orderer {
			return NewValidationError("selections", "all selections must share one orderer")
		}
	}

	if o.TotalCost < 0 {
		return NewValidationError("total_cost", "must not be negative")
	}
	if len([]rune(o.Request)) > OrderRequestMaxLen {
		return NewValidationError("request", "must be at most 50 characters")
	}

	return nil
}

// OrdererID returns the user who placed the order. Selections all share one
// orderer, so the first one is authoritative.
func (o *Order) OrdererID() uuid.UUID {
	if len(o.Selections) == 0 {
		return uuid.Nil
	}
	return o.Selections[0].OrdererID
}
