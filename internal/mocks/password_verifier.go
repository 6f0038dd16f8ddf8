package mocks

import (
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier and
// auth.PasswordHasher for testing
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
	HashFn    func(password string) (string, error)

	CompareErr error
}

var (
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
	_ auth.PasswordHasher   = (*MockPasswordVerifier)(nil)
)

// Compare implements the PasswordVerifier interface. By default any
// password matches unless CompareErr is set.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return m.CompareErr
}

// Hash implements the PasswordHasher interface. By default it returns the
// password prefixed so tests can tell the value was "hashed".
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}
