package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/auth"
	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/http/response"
	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/media/images"
	"github.com/helojet/helojet-server/internal/pages"
	"github.com/helojet/helojet-server/internal/ratelimit"
	"github.com/helojet/helojet-server/internal/search"
	"github.com/helojet/helojet-server/internal/service"
	"github.com/helojet/helojet-server/internal/sse"
	"github.com/helojet/helojet-server/internal/store"
	"github.com/helojet/helojet-server/internal/validation"
)

type testServer struct {
	server *Server
	api    humatest.TestAPI
	store  *store.Store
	gate   *auth.Gate
}

type serverOption func(*Options)

func withLeadLimiter(l *ratelimit.KeyedRateLimiter) serverOption {
	return func(o *Options) { o.LeadLimiter = l }
}

// setupTestServer wires a server over in-memory slots and an in-memory index.
func setupTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	st := store.New(kv.NewMemory(), nil, nil)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.Open(search.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchService := service.NewSearchService(index, st, nil)
	st.SetSearchIndexer(searchService)
	require.NoError(t, searchService.ReindexAll(context.Background()))

	library, err := pages.New(domain.Company, "", nil)
	require.NoError(t, err)

	v := validation.New()
	services := &Services{
		Catalog:  service.NewCatalogService(st, nil),
		Editor:   service.NewEditorService(st, images.NewProcessor(nil), service.NewGenerator(0, nil), v, 0, nil),
		Leads:    service.NewLeadService(st, v, 0, nil),
		Settings: service.NewSettingsService(st, v, nil),
		Search:   searchService,
		Pages:    library,
	}

	gate := auth.NewGate(st, nil)
	manager := sse.NewManager(nil)

	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}

	server := NewServer(st, services, gate, manager, options, nil)

	return &testServer{
		server: server,
		api:    humatest.Wrap(t, server.API()),
		store:  st,
		gate:   gate,
	}
}

// login opens the admin area.
func (ts *testServer) login(t *testing.T) {
	t.Helper()
	ok, err := ts.gate.Login(context.Background(), auth.AdminIdentifier, auth.AdminSecret)
	require.NoError(t, err)
	require.True(t, ok)
}

// testEnvelope mirrors the response envelope with typed data.
type testEnvelope[T any] struct {
	V       int                 `json:"v"`
	Success bool                `json:"success"`
	Data    T                   `json:"data"`
	Error   *response.ErrorBody `json:"error"`
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	require.Equal(t, EnvelopeVersion, env.V)
	return env
}

// pngBytes encodes a small solid image.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := range 4 {
		for y := range 4 {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 40), B: uint8(y * 40), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
