package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	ownerID := uuid.New()

	token, err := svc.GenerateToken(ownerID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.Equal(t, ownerID.String(), claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := CustomClaims{OwnerID: uuid.New()}
	claims.Issuer = Issuer
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(signed)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
