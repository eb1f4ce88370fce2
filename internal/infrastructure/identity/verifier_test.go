package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundreel-backend/internal/config"
)

var testCfg = config.IdentityConfig{
	Secret:   "test-secret",
	Issuer:   "https://auth.test",
	Audience: "soundreel-api",
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-123",
		"email": "user@example.com",
		"iss":   testCfg.Issuer,
		"aud":   testCfg.Audience,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	principal, err := v.Verify(context.Background(), signToken(t, testCfg.Secret, validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-123", principal.ID)
	assert.Equal(t, "user@example.com", principal.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	_, err := v.Verify(context.Background(), signToken(t, "other-secret", validClaims()))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_WrongIssuer(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	claims := validClaims()
	claims["iss"] = "https://evil.test"

	_, err := v.Verify(context.Background(), signToken(t, testCfg.Secret, claims))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_Expired(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	_, err := v.Verify(context.Background(), signToken(t, testCfg.Secret, claims))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_MissingExpiration(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	claims := validClaims()
	delete(claims, "exp")

	_, err := v.Verify(context.Background(), signToken(t, testCfg.Secret, claims))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_MissingEmail(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	claims := validClaims()
	delete(claims, "email")

	_, err := v.Verify(context.Background(), signToken(t, testCfg.Secret, claims))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_Garbage(t *testing.T) {
	v := NewJWTVerifier(testCfg)

	_, err := v.Verify(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}
