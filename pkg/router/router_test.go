package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouteDispatch(t *testing.T) {
	r := New()
	r.Get("/ping", "ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pong"))
	})

	rec := get(t, r.Handler(), "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestURLParam(t *testing.T) {
	r := New()
	r.Get("/widgets/{id}", "widgets.get", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(Param(req, "id")))
	})

	rec := get(t, r.Handler(), "/widgets/42")
	assert.Equal(t, "42", rec.Body.String())
}

func TestGroupPrefix(t *testing.T) {
	r := New()
	api := r.Group("/api/v1")
	widgets := api.Group("/widgets")
	widgets.Get("/", "widgets.list", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	widgets.Get("/{id}", "widgets.get", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, get(t, r.Handler(), "/api/v1/widgets").Code)
	assert.Equal(t, http.StatusOK, get(t, r.Handler(), "/api/v1/widgets/7").Code)
	assert.Equal(t, http.StatusNotFound, get(t, r.Handler(), "/widgets").Code)
}

func TestNamedRoutes(t *testing.T) {
	r := New()
	api := r.Group("/api/v1")
	api.Get("/widgets/{id}", "widgets.get", func(w http.ResponseWriter, _ *http.Request) {})

	path, ok := r.Path("widgets.get")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/widgets/{id}", path)

	url, err := r.URL("widgets.get", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/widgets/9", url)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRouteMiddleware(t *testing.T) {
	stamp := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Stamped", "yes")
			next.ServeHTTP(w, req)
		})
	}

	r := New()
	r.Get("/stamped", "stamped", func(w http.ResponseWriter, _ *http.Request) {}, stamp)
	r.Get("/plain", "plain", func(w http.ResponseWriter, _ *http.Request) {})

	assert.Equal(t, "yes", get(t, r.Handler(), "/stamped").Header().Get("X-Stamped"))
	assert.Empty(t, get(t, r.Handler(), "/plain").Header().Get("X-Stamped"))
}
