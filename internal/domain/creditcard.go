package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreditCard field bounds.
const (
	CardNumberLen       = 16
	CardCVCLen          = 3
	CardOwnerNameMaxLen = 5
	CardAliasMaxLen     = 100
)

// CreditCard is a stored payment card exclusively owned by one user.
// Everything except Alias is immutable after creation.
type CreditCard struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner"`
	OwnerFirstName string    `json:"owner_first_name"`
	OwnerLastName  string    `json:"owner_last_name"`
	Alias          string    `json:"alias,omitempty"`
	CardNumber     string    `json:"card_number"`
	CVC            string    `json:"cvc"`
	ExpiryYear     int       `json:"expiry_year"`
	ExpiryMonth    int       `json:"expiry_month"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCreditCard creates a card owned by ownerID and validates it. The
// expiry year floor is the current calendar year at call time.
func NewCreditCard(
	ownerID uuid.UUID,
	ownerFirstName, ownerLastName, alias string,
	cardNumber, cvc string,
	expiryYear, expiryMonth int,
) (*CreditCard, error) {
	now := time.Now().UTC()
	card := &CreditCard{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		OwnerFirstName: ownerFirstName,
		OwnerLastName:  ownerLastName,
		Alias:          alias,
		CardNumber:     cardNumber,
		CVC:            cvc,
		ExpiryYear:     expiryYear,
		ExpiryMonth:    expiryMonth,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := card.Validate(now.Year()); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks the card against the creation rules. currentYear is the
// floor for ExpiryYear; expiry is checked at year granularity only.
func (c *CreditCard) Validate(currentYear int) error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if c.OwnerID == uuid.Nil {
		return NewValidationError("owner", "cannot be empty")
	}

	if c.OwnerFirstName == "" {
		return NewValidationError("owner_first_name", "cannot be empty")
	}
	if len([]rune(c.OwnerFirstName)) > CardOwnerNameMaxLen {
		return NewValidationError("owner_first_name", "must be at most 5 characters")
	}
	if c.OwnerLastName == "" {
		return NewValidationError("owner_last_name", "cannot be empty")
	}
	if len([]rune(c.OwnerLastName)) > CardOwnerNameMaxLen {
		return NewValidationError("owner_last_name", "must be at most 5 characters")
	}

	if len([]rune(c.Alias)) > CardAliasMaxLen {
		return NewValidationError("alias", "must be at most 100 characters")
	}

	if len(c.CardNumber) != CardNumberLen || !isNumeric(c.CardNumber) {
		return NewValidationError("card_number", "must be exactly 16 digits")
	}
	if len(c.CVC) != CardCVCLen || !isNumeric(c.CVC) {
		return NewValidationError("cvc", "must be exactly 3 digits")
	}

	if c.ExpiryMonth < 1 || c.ExpiryMonth > 12 {
		return NewValidationError("expiry_month", "must be between 1 and 12")
	}
	if c.ExpiryYear < currentYear {
		return NewValidationError("expiry_year", "must not be in the past")
	}

	return nil
}

// UpdateAlias sets the only mutable field and bumps UpdatedAt.
func (c *CreditCard) UpdateAlias(alias string) error {
	if len([]rune(alias)) > CardAliasMaxLen {
		return NewValidationError("alias", "must be at most 100 characters")
	}
	c.Alias = alias
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// MaskedNumber renders the card number for display, keeping the first four
// digits only.
func (c *CreditCard) MaskedNumber() string {
	if len(c.CardNumber) < 4 {
		return c.CardNumber
	}
	return c.CardNumber[:4] + "-****-****-****"
}
