package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenString := signToken(t, testSecret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "user_1",
		Email:  "records@stmarys.example",
		Role:   "hospital",
	})

	claims, err := verifier.ValidateToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "hospital", claims.Role)
}

func TestValidateTokenExpired(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenString := signToken(t, testSecret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: "user_1",
	})

	_, err := verifier.ValidateToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenString := signToken(t, "some-other-secret", &Claims{UserID: "user_1"})

	_, err := verifier.ValidateToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMissingUserID(t *testing.T) {
	verifier := NewVerifier(testSecret)

	tokenString := signToken(t, testSecret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "records@stmarys.example",
	})

	_, err := verifier.ValidateToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	verifier := NewVerifier(testSecret)

	_, err := verifier.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
