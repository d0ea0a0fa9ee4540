package auth

import (
	"testing"
	"time"

	"github.com/fleet/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "fleet-backend",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)
	companyID := uuid.New()

	token, err := service.GenerateToken(companyID, "ops@acme.test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, companyID.String(), claims.CompanyID)
	assert.Equal(t, "fleet-backend", claims.Issuer)

	parsed, err := claims.CompanyUUID()
	require.NoError(t, err)
	assert.Equal(t, companyID, parsed)
}

func TestValidateToken_Expired(t *testing.T) {
	service := newTestService(-time.Minute)

	token, err := service.GenerateToken(uuid.New(), "ops@acme.test")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newTestService(time.Hour).GenerateToken(uuid.New(), "ops@acme.test")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different", Expiration: time.Hour, Issuer: "fleet-backend"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
