package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cat-rescue/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Api-Key") != "key-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body.Token {
		case "good":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(verifyResponse{
				UserID:   "admin-1",
				Email:    "admin@rescue.test",
				TenantID: "tenant-a",
				Role:     "admin",
			})
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerifier_Verify(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "key-1"})
	require.NoError(t, err)
	v := NewVerifier(client)

	claims, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "tenant-a", claims.TenantID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	_, err = v.Verify(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = v.Verify(context.Background(), "broken")
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestVerifier_NotConfigured(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = NewVerifier(client).Verify(context.Background(), "good")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
