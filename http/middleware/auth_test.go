package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"intern-portal/config"
	"intern-portal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T) (http.HandlerFunc, *bool) {
	called := false
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
		adminID, ok := AdminID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(3), adminID)
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireAuthMissingToken(t *testing.T) {
	handler, called := protectedHandler(t)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/interns", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	handler, called := protectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/interns", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	handler, called := protectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/interns", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequireAuthValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := services.IssueToken(3)
	require.NoError(t, err)

	handler, called := protectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/interns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}
