package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/helojet/helojet-server/internal/api"
	"github.com/helojet/helojet-server/internal/auth"
	"github.com/helojet/helojet-server/internal/config"
	"github.com/helojet/helojet-server/internal/logger"
	"github.com/helojet/helojet-server/internal/pages"
	"github.com/helojet/helojet-server/internal/service"
)

// HTTPServerHandle owns the storefront listener.
type HTTPServerHandle struct {
	*http.Server
	// BoundAddr is the listener address, useful when the configured port is 0.
	BoundAddr net.Addr
}

// Shutdown drains in-flight requests. Open event streams end when their
// request contexts are canceled.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	limiter := do.MustInvoke[*LeadLimiterHandle](i)
	gate := do.MustInvoke[*auth.Gate](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Catalog:  do.MustInvoke[*service.CatalogService](i),
		Editor:   do.MustInvoke[*service.EditorService](i),
		Leads:    do.MustInvoke[*service.LeadService](i),
		Settings: do.MustInvoke[*service.SettingsService](i),
		Search:   do.MustInvoke[*service.SearchService](i),
		Pages:    do.MustInvoke[*pages.Library](i),
	}

	handler := api.NewServer(storeHandle.Store, services, gate, sseHandle.Manager, api.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		LeadLimiter: limiter.KeyedRateLimiter,
	}, log.Logger)

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind before returning so a taken port fails bootstrap.
	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", cfg.Server.Port, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped", "error", err)
		}
	}()

	log.Info("HTTP server listening", "addr", ln.Addr().String())

	return &HTTPServerHandle{Server: srv, BoundAddr: ln.Addr()}, nil
}
