package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole classifies an account. Stored as the short code, matching the
// values the mobile clients already send.
type UserRole string

const (
	RoleClient     UserRole = "CLI"
	RoleStoreOwner UserRole = "STO"
	RoleEtc        UserRole = "ETC"
)

// IsValid reports whether the role is one of the known codes.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleClient, RoleStoreOwner, RoleEtc:
		return true
	}
	return false
}

// Phone number bounds: landlines like 021231234 are 9 digits, mobile
// numbers like 01012341234 are 11.
const (
	PhoneNumberMinLen = 9
	PhoneNumberMaxLen = 11
	UserNameMaxLen    = 10
)

// User represents a registered account. The phone number is the
// authentication key and is never changed through the profile path.
type User struct {
	ID             uuid.UUID `json:"id"`
	PhoneNumber    string    `json:"phone_number"`
	Name           string    `json:"name"`
	Role           UserRole  `json:"role"`
	HashedPassword string    `json:"-"` // never expose the hash

	IsActive   bool `json:"is_active"`
	IsVerified bool `json:"is_verified"` // is phone_number verified

	IsAdmin     bool `json:"-"`
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	DateJoined time.Time `json:"date_joined"`
}

// NewUser creates a client account with the given phone number and name.
// The caller is responsible for hashing the password and assigning it to
// HashedPassword before the user is stored.
func NewUser(phoneNumber, name string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		PhoneNumber: phoneNumber,
		Name:        name,
		Role:        RoleClient,
		IsActive:    true,
		DateJoined:  time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewSuperuser creates an account with every privilege flag set. The phone
// number is considered verified because superusers are provisioned from the
// command line, not through registration.
func NewSuperuser(phoneNumber, name string) (*User, error) {
	user, err := NewUser(phoneNumber, name)
	if err != nil {
		return nil, err
	}

	user.Role = RoleEtc
	user.IsVerified = true
	user.IsAdmin = true
	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// Validate checks if the User has valid data.
// Returns a *ValidationError naming the offending field.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}

	if err := ValidatePhoneNumber(u.PhoneNumber); err != nil {
		return err
	}

	if u.Name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if len([]rune(u.Name)) > UserNameMaxLen {
		return NewValidationError("name", "must be at most 10 characters")
	}

	if !u.Role.IsValid() {
		return NewValidationError("role", "must be one of CLI, STO, ETC")
	}

	return nil
}

// ValidatePhoneNumber checks the registration rules for a phone number:
// purely numeric, between 9 and 11 digits.
func ValidatePhoneNumber(phoneNumber string) error {
	if phoneNumber == "" {
		return NewValidationError("phone_number", "cannot be empty")
	}
	if len(phoneNumber) < PhoneNumberMinLen || len(phoneNumber) > PhoneNumberMaxLen {
		return NewValidationError("phone_number", "must be between 9 and 11 digits")
	}
	if !isNumeric(phoneNumber) {
		return NewValidationError("phone_number", "must be numeric")
	}
	return nil
}

// isNumeric reports whether s consists solely of ASCII digits.
func isNumeric(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}
