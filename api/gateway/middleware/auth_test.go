package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisharrington/irrigo/api/gateway/middleware"
	"github.com/chrisharrington/irrigo/internal/utils/auth"
	"github.com/chrisharrington/irrigo/pkg/dto"
	"github.com/chrisharrington/irrigo/pkg/types"
)

func captureAccount(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = middleware.AccountID(r.Context())
	})
}

func TestRequireAuthPassesThroughWithoutSigningKey(t *testing.T) {
	cfg := &types.ServiceConfig{API: &types.APIConfig{}}

	var account string
	handler := middleware.RequireAuth(cfg)(captureAccount(&account))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "local", account)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	cfg := &types.ServiceConfig{
		Environment: "development",
		API:         &types.APIConfig{JWTSigningKey: "test-signing-key"},
	}

	token, err := auth.GenerateToken(&dto.AccountResponse{ID: "acct-1", Email: "a@example.com"}, cfg)
	require.NoError(t, err)

	var account string
	handler := middleware.RequireAuth(cfg)(captureAccount(&account))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acct-1", account)
}

func TestRequireAuthRejectsMissingAndGarbageTokens(t *testing.T) {
	cfg := &types.ServiceConfig{
		Environment: "development",
		API:         &types.APIConfig{JWTSigningKey: "test-signing-key"},
	}

	var account string
	handler := middleware.RequireAuth(cfg)(captureAccount(&account))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, account)
}
