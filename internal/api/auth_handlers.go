package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/helojet/helojet-server/internal/auth"
	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Admin login",
		Description: "Checks the admin credentials and opens the admin area",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Closes the admin area",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "authStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/status",
		Summary:     "Admin session status",
		Tags:        []string{"Authentication"},
	}, s.handleAuthStatus)
}

// === DTOs ===

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Identifier string `json:"identifier" maxLength:"320" doc:"Admin email"`
	Secret     string `json:"secret" maxLength:"1024" doc:"Admin password"`
	From       string `json:"from,omitempty" required:"false" maxLength:"2048" doc:"Path to return to after login"`
}

// LoginInput is the Huma input for login.
type LoginInput struct {
	Body LoginRequest
}

// LoginResponse tells the client where to go next.
type LoginResponse struct {
	RedirectTo string `json:"redirect_to" doc:"Path to navigate to"`
}

// LoginOutput is the Huma output for login.
type LoginOutput struct {
	Body LoginResponse
}

// AuthStatusResponse reports the admin flag.
type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated" doc:"Whether the admin area is open"`
}

// AuthStatusOutput is the Huma output for the status and logout endpoints.
type AuthStatusOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         AuthStatusResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	ok, err := s.gate.Login(ctx, input.Body.Identifier, input.Body.Secret)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.InvalidCredentials(auth.FailedLoginMessage)
	}

	return &LoginOutput{
		Body: LoginResponse{RedirectTo: safeRedirect(input.Body.From)},
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, _ *struct{}) (*AuthStatusOutput, error) {
	if err := s.gate.Logout(ctx); err != nil {
		return nil, err
	}
	return &AuthStatusOutput{
		CacheControl: CacheNoStore,
		Body:         AuthStatusResponse{Authenticated: false},
	}, nil
}

func (s *Server) handleAuthStatus(ctx context.Context, _ *struct{}) (*AuthStatusOutput, error) {
	ok, err := s.gate.IsAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthStatusOutput{
		CacheControl: CacheNoStore,
		Body:         AuthStatusResponse{Authenticated: ok},
	}, nil
}

// safeRedirect keeps redirects on this site. Anything that is not a local
// path falls back to the admin home.
func safeRedirect(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.Contains(from, `\`) {
		return service.AdminHome
	}
	return from
}
