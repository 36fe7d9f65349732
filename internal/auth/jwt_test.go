package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func initSecret(t *testing.T, secret string) {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)
	require.NoError(t, InitJWTSecret())
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	initSecret(t, "test-secret")

	token, err := GenerateJWT("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := VerifyJWT(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", subject)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	initSecret(t, "test-secret")

	token, err := GenerateJWT("a@x.com")
	require.NoError(t, err)

	initSecret(t, "other-secret")

	_, err = VerifyJWT(token)
	require.Error(t, err)
}

func TestVerifyJWTExpired(t *testing.T) {
	initSecret(t, "test-secret")

	claims := jwt.MapClaims{
		"sub": "a@x.com",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	require.Error(t, err)
}

func TestVerifyJWTMissingSubject(t *testing.T) {
	initSecret(t, "test-secret")

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	require.Error(t, err)
}

func TestVerifyJWTGarbage(t *testing.T) {
	initSecret(t, "test-secret")

	_, err := VerifyJWT("not-a-token")
	require.Error(t, err)
}

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.Error(t, InitJWTSecret())
}
