package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, or an error on mismatch.
	Compare(hashedPassword, password string) error
}

// PasswordHasher defines the interface for hashing plaintext passwords
// before storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptVerifier implements PasswordVerifier and PasswordHasher using bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a new BcryptVerifier with the default cost.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Hash implements the PasswordHasher interface using bcrypt.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// Password policy bounds. The maximum tracks bcrypt's practical input limit.
const (
	PasswordMinLen = 8
	PasswordMaxLen = 72
)

// PasswordPolicy validates password strength for registration and password
// changes. Rejections surface as ErrWeakPassword.
type PasswordPolicy interface {
	Validate(password string) error
}

// DefaultPasswordPolicy requires 8 to 72 characters and rejects passwords
// made up entirely of digits.
type DefaultPasswordPolicy struct{}

// NewDefaultPasswordPolicy creates the standard policy.
func NewDefaultPasswordPolicy() *DefaultPasswordPolicy {
	return &DefaultPasswordPolicy{}
}

// Validate implements the PasswordPolicy interface.
func (p *DefaultPasswordPolicy) Validate(password string) error {
	if len(password) < PasswordMinLen {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, PasswordMinLen)
	}
	if len(password) > PasswordMaxLen {
		return fmt.Errorf("%w: must be at most %d characters", ErrWeakPassword, PasswordMaxLen)
	}
	if allDigits(password) {
		return fmt.Errorf("%w: must not be entirely numeric", ErrWeakPassword)
	}
	return nil
}

func allDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
