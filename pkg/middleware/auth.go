package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/omikunle/pkg/auth"
	"github.com/shashiranjanraj/omikunle/pkg/response"
)

type claimsKey struct{}

// ClaimsFromCtx returns the JWT claims stored by the Auth middleware, or nil
// for an unauthenticated (public) request.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}

// Auth returns a middleware that requires a valid bearer token for every
// route except the public surface of the shop:
//
//   - GET/OPTIONS on {prefix}/products... and {prefix}/categories...
//   - POST {prefix}/users/login and {prefix}/users/register
//   - /metrics and /healthz
//
// Valid claims are stored in the request context for downstream handlers.
func Auth(m *auth.Manager, prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r, prefix) {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || token == r.Header.Get("Authorization") {
				response.Unauthorized(w)
				return
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated requests whose token lacks the admin
// claim. Mount after Auth on admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromCtx(r.Context())
		if claims == nil || !claims.IsAdmin {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isPublic(r *http.Request, prefix string) bool {
	path := r.URL.Path

	if path == "/metrics" || path == "/healthz" {
		return true
	}

	if r.Method == http.MethodGet || r.Method == http.MethodOptions {
		if strings.HasPrefix(path, prefix+"/products") || strings.HasPrefix(path, prefix+"/categories") {
			return true
		}
	}

	if r.Method == http.MethodPost {
		if path == prefix+"/users/login" || path == prefix+"/users/register" {
			return true
		}
	}

	return false
}
