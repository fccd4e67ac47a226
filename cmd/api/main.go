// Package main runs the HeloJet storefront server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/helojet/helojet-server/internal/config"
	"github.com/helojet/helojet-server/internal/di"
	"github.com/helojet/helojet-server/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "helojet: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	log.Info("Storefront ready",
		"addr", ":"+cfg.Server.Port,
		"backend", cfg.Storage.Backend)

	<-ctx.Done()
	log.Info("Shutting down")

	// Every handle implementing do.Shutdownable closes in reverse dependency order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Goodbye")
	_ = log.Close() //nolint:errcheck // exiting
}
