package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/omikunle/pkg/auth"
)

const testPrefix = "/api/v1"

func authStack(t *testing.T) (http.Handler, *auth.Manager) {
	t.Helper()

	manager := auth.NewManager("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := ClaimsFromCtx(r.Context()); claims != nil {
			w.Header().Set("X-User", claims.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})
	return Auth(manager, testPrefix)(next), manager
}

func TestPublicSurface(t *testing.T) {
	h, _ := authStack(t)

	public := []struct {
		method string
		path   string
	}{
		{http.MethodGet, testPrefix + "/products"},
		{http.MethodGet, testPrefix + "/products/abc"},
		{http.MethodGet, testPrefix + "/categories"},
		{http.MethodPost, testPrefix + "/users/login"},
		{http.MethodPost, testPrefix + "/users/register"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/healthz"},
	}

	for _, tc := range public {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestProtectedWithoutToken(t *testing.T) {
	h, _ := authStack(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, testPrefix + "/orders"},
		{http.MethodPost, testPrefix + "/products"},
		{http.MethodDelete, testPrefix + "/categories/abc"},
		{http.MethodGet, testPrefix + "/users"},
	}

	for _, tc := range protected {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestValidTokenStoresClaims(t *testing.T) {
	h, manager := authStack(t)

	token, err := manager.GenerateToken("user-1", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, testPrefix+"/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Header().Get("X-User"))
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	h, manager := authStack(t)

	token, err := manager.GenerateToken("user-1", false)
	require.NoError(t, err)

	for _, header := range []string{token, "Basic " + token, "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, testPrefix+"/orders", nil)
		req.Header.Set("Authorization", header)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAdmin(t *testing.T) {
	manager := auth.NewManager("test-secret")
	h := Auth(manager, testPrefix)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	adminToken, err := manager.GenerateToken("admin", true)
	require.NoError(t, err)
	userToken, err := manager.GenerateToken("user", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, testPrefix+"/orders", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, testPrefix+"/orders", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
