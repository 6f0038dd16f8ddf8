package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	t.Parallel()

	policy := NewDefaultPasswordPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"mixed characters", "thePas123Q", false},
		{"minimum length", "abcdefg1", false},
		{"too short", "abc1234", true},
		{"entirely numeric", "12345678", true},
		{"short and numeric", "1234", true},
		{"at maximum length", strings.Repeat("a", 71) + "1", false},
		{"over maximum length", strings.Repeat("a", 73), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBcryptVerifierRoundTrip(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()

	hash, err := verifier.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, verifier.Compare(hash, "correct horse battery"))
	assert.Error(t, verifier.Compare(hash, "wrong password"))
}
