package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"cat-rescue/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, v *Verifier, sub, role string, exp time.Time) string {
	t.Helper()
	tok, err := v.Sign(Claims{
		Email:    "someone@rescue.test",
		TenantID: "tenant-a",
		Role:     role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	})
	require.NoError(t, err)
	return tok
}

func TestVerifier_Verify_Valid(t *testing.T) {
	v := NewVerifier("secret", "cat-rescue")
	tok := signed(t, v, "user-1", "ADMIN", time.Now().Add(time.Hour))

	claims, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-a", claims.TenantID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestVerifier_Verify_Expired(t *testing.T) {
	v := NewVerifier("secret", "")
	tok := signed(t, v, "user-1", "USER", time.Now().Add(-time.Minute))

	_, err := v.Verify(context.Background(), tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gojwt.ErrTokenExpired))
}

func TestVerifier_Verify_WrongSecret(t *testing.T) {
	other := NewVerifier("other", "")
	tok := signed(t, other, "user-1", "USER", time.Now().Add(time.Hour))

	_, err := NewVerifier("secret", "").Verify(context.Background(), tok)
	assert.True(t, errors.Is(err, gojwt.ErrTokenSignatureInvalid))
}

func TestVerifier_Verify_WrongIssuer(t *testing.T) {
	tok := signed(t, NewVerifier("secret", "someone-else"), "user-1", "USER", time.Now().Add(time.Hour))

	_, err := NewVerifier("secret", "cat-rescue").Verify(context.Background(), tok)
	assert.True(t, errors.Is(err, gojwt.ErrTokenInvalidIssuer))
}

func TestVerifier_Verify_MissingSubject(t *testing.T) {
	v := NewVerifier("secret", "")
	tok := signed(t, v, "", "USER", time.Now().Add(time.Hour))

	_, err := v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestVerifier_Verify_Empty(t *testing.T) {
	_, err := NewVerifier("secret", "").Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
