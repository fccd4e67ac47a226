package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["storage"].Status)
	assert.Equal(t, "memory", env.Data.Components["storage"].Message)
	assert.Equal(t, "1 indexed product", env.Data.Components["search"].Message)
	assert.Equal(t, "no connected clients", env.Data.Components["sse"].Message)
	assert.Equal(t, "no open drafts", env.Data.Components["editor"].Message)
}

func TestHealthCheck_DegradedWithoutServices(t *testing.T) {
	s := &Server{}
	assert.Equal(t, "degraded", s.checkSearchIndex().Status)
	assert.Equal(t, "degraded", s.checkSSEManager().Status)
	assert.Equal(t, "degraded", s.checkEditor().Status)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "no drafts", plural(0, "draft", "drafts"))
	assert.Equal(t, "1 draft", plural(1, "draft", "drafts"))
	assert.Equal(t, "12 drafts", plural(12, "draft", "drafts"))
}
