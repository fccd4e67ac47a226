package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/ratelimit"
	"github.com/helojet/helojet-server/internal/service"
)

func TestSubmitLead(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/leads", map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
		"phone": "555-0100",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	env := decode[service.LeadReceipt](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, domain.InterestConsultation, env.Data.Lead.Interest)
	assert.Equal(t,
		"Thank you, Ada. One of our planning specialists will contact you at 555-0100 shortly to confirm your appointment details.",
		env.Data.Message)

	ts.login(t)
	resp = ts.api.Get("/api/v1/admin/leads")
	require.Equal(t, http.StatusOK, resp.Code)
	leads := decode[[]domain.Lead](t, resp).Data
	require.Len(t, leads, 1)
	assert.Equal(t, "ada@example.com", leads[0].Email)
}

func TestSubmitLead_Invalid(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/leads", map[string]any{
		"name":     "Ada",
		"email":    "not-an-email",
		"phone":    "   ",
		"interest": "printer",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decode[any](t, resp)
	assert.Equal(t, "VALIDATION", env.Error.Code)
	details, ok := env.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "phone")
}

func TestSubmitLead_RateLimited(t *testing.T) {
	limiter := ratelimit.New(0.001, 1)
	t.Cleanup(limiter.Stop)
	ts := setupTestServer(t, withLeadLimiter(limiter))

	body := map[string]any{"name": "Ada", "email": "ada@example.com", "phone": "555-0100"}

	resp := ts.api.Post("/api/v1/leads", body)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Post("/api/v1/leads", body)
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
	assert.Equal(t, "TOO_MANY_REQUESTS", decode[any](t, resp).Error.Code)
}

func TestListLeads_RequiresLogin(t *testing.T) {
	ts := setupTestServer(t)
	resp := ts.api.Get("/api/v1/admin/leads")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:5", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.1.1.1:5", "10.0.0.9"},
		{"remote addr", nil, "192.168.1.4:51234", "192.168.1.4"},
		{"no port", nil, "192.168.1.5", "192.168.1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			var got string
			middleware.RealIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = clientKey(r)
			})).ServeHTTP(httptest.NewRecorder(), r)
			assert.Equal(t, tt.want, got)
		})
	}
}
