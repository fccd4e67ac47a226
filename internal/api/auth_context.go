package api

import (
	"context"
	"net/http"
	"net/url"

	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/http/response"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// requestPathKey holds the path the client asked for, used to build the
// login redirect for admin routes.
const requestPathKey ctxKey = "requestPath"

// LoginPath is the storefront's sign-in page.
const LoginPath = "/login"

// withRequestPath stores the request path in the context so huma handlers
// can build login redirects.
func withRequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), requestPathKey, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestPath(ctx context.Context) string {
	p, _ := ctx.Value(requestPathKey).(string)
	return p
}

// loginURL returns the sign-in page with from set to the requested path.
func loginURL(from string) string {
	if from == "" {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}

// unauthorized is the error for admin routes hit while signed out.
func unauthorized(from string) *domainerrors.Error {
	return domainerrors.Unauthorized("Sign in to continue.").
		WithDetails(map[string]string{"login_url": loginURL(from)})
}

// isAdmin reports whether the admin flag is set. Storage failures count as
// signed out.
func (s *Server) isAdmin(ctx context.Context) bool {
	if s.gate == nil {
		return false
	}
	ok, err := s.gate.IsAuthenticated(ctx)
	if err != nil {
		s.logger.Warn("failed to read admin flag", "error", err)
		return false
	}
	return ok
}

// RequireAdmin returns an UNAUTHORIZED error carrying the login URL unless
// the admin flag is set.
func (s *Server) RequireAdmin(ctx context.Context) error {
	if s.isAdmin(ctx) {
		return nil
	}
	return unauthorized(requestPath(ctx))
}

// requireAdminHTTP is the chi version of RequireAdmin.
func (s *Server) requireAdminHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.isAdmin(r.Context()) {
			response.HandleError(w, unauthorized(r.URL.Path), s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}
