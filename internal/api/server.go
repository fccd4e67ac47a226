// Package api provides the HTTP API server and handlers for the HeloJet storefront.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/helojet/helojet-server/internal/auth"
	"github.com/helojet/helojet-server/internal/http/response"
	"github.com/helojet/helojet-server/internal/ratelimit"
	"github.com/helojet/helojet-server/internal/sse"
	"github.com/helojet/helojet-server/internal/store"
)

// Options carries the server's non-service settings.
type Options struct {
	CORSOrigins []string
	// LeadLimiter throttles lead submissions per client IP. Nil disables it.
	LeadLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	router      *chi.Mux
	api         huma.API
	store       *store.Store
	services    *Services
	gate        *auth.Gate
	sseManager  *sse.Manager
	sseHandler  *sse.Handler
	leadLimiter *ratelimit.KeyedRateLimiter
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st *store.Store,
	services *Services,
	gate *auth.Gate,
	sseManager *sse.Manager,
	opts Options,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		router:      chi.NewRouter(),
		store:       st,
		services:    services,
		gate:        gate,
		sseManager:  sseManager,
		leadLimiter: opts.LeadLimiter,
		logger:      logger,
	}
	if sseManager != nil {
		s.sseHandler = sse.NewHandler(sseManager, logger, s.isAdmin)
	}

	s.setupMiddleware(opts.CORSOrigins)

	humaConfig := huma.DefaultConfig("HeloJet Storefront API", "1.0.0")
	humaConfig.Info.Description = "Affiliate storefront catalog, editor and lead intake"
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler(logger)

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	s.router.Use(withRequestPath)
}

func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found.", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed.", nil, s.logger)
	})

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerProductRoutes()
	s.registerDraftRoutes()
	s.registerLeadRoutes()
	s.registerSettingsRoutes()
	s.registerPageRoutes()

	// Multipart and streaming endpoints stay on chi.
	s.router.With(s.requireAdminHTTP).Post("/api/v1/admin/drafts/{id}/images/upload", s.handleUploadImage)
	if s.sseHandler != nil {
		s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	}
}

// requestLogger logs one line per request at INFO, or WARN for 5xx.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
