package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SECRET_KEY = "test-secret"

	accountID := uuid.New()
	signed, jti, err := generateToken(accountID)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEmpty(t, jti)

	token, err := ValidatedToken(signed)
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	assert.True(t, ok)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.Equal(t, accountID.String(), claims.Subject)
	assert.Equal(t, jti, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SECRET_KEY = "test-secret"
	signed, _, err := generateToken(uuid.New())
	assert.NoError(t, err)

	SECRET_KEY = "different-secret"
	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}

func TestEachTokenGetsFreshJti(t *testing.T) {
	SECRET_KEY = "test-secret"
	accountID := uuid.New()

	_, jti1, err := generateToken(accountID)
	assert.NoError(t, err)
	_, jti2, err := generateToken(accountID)
	assert.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}

func TestInMemoryRevocationStore(t *testing.T) {
	store := NewInMemoryRevocationStore()

	revoked, err := store.IsRevoked("unknown-jti")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, store.Revoke("some-jti", time.Now().Add(time.Hour)))
	revoked, err = store.IsRevoked("some-jti")
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestCleanUpExpiredDropsOnlyExpiredEntries(t *testing.T) {
	store := NewInMemoryRevocationStore()

	assert.NoError(t, store.Revoke("expired-jti", time.Now().Add(-time.Minute)))
	assert.NoError(t, store.Revoke("live-jti", time.Now().Add(time.Hour)))

	store.CleanUpExpired()

	revoked, err := store.IsRevoked("expired-jti")
	assert.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = store.IsRevoked("live-jti")
	assert.NoError(t, err)
	assert.True(t, revoked)
}
