package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

// newFixedTimeService builds a service whose clock is pinned to start and
// can be advanced by tests.
func newFixedTimeService(t *testing.T, start time.Time) (*hmacJWTService, *time.Time) {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)

	now := start
	impl.timeFunc = func() time.Time { return now }
	return impl, &now
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTService(cfg)
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newFixedTimeService(t, fixedTime)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(60*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenExpiry(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, now := newFixedTimeService(t, fixedTime)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	// Still inside the lifetime plus clock skew.
	*now = fixedTime.Add(61 * time.Minute)
	_, err = svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	// Past the lifetime and the skew allowance.
	*now = fixedTime.Add(63 * time.Minute)
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newFixedTimeService(t, time.Now())

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newFixedTimeService(t, fixedTime)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-jwt-secret-that-is-32-chars!!"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTypeSeparation(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newFixedTimeService(t, fixedTime)
	userID := uuid.New()

	accessToken, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	// A refresh token must not authenticate API requests.
	_, err = svc.ValidateToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	// An access token must not drive the refresh flow.
	_, err = svc.ValidateRefreshToken(context.Background(), accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshToken(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, now := newFixedTimeService(t, fixedTime)
	userID := uuid.New()

	refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)

	// Expiry surfaces as the refresh-flavored sentinel.
	*now = fixedTime.Add(1443 * time.Minute)
	_, err = svc.ValidateRefreshToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)

	_, err = svc.ValidateRefreshToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestValidateAnyToken(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newFixedTimeService(t, fixedTime)
	userID := uuid.New()

	accessToken, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.ValidateAnyToken(context.Background(), accessToken)
	assert.NoError(t, err)
	_, err = svc.ValidateAnyToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	_, err = svc.ValidateAnyToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
