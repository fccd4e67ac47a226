// Package auth implements the storefront's admin gate.
//
// The gate is cosmetic, not a security boundary. It compares against one
// fixed credential pair that ships with the site and keeps a single
// process-wide flag in a durable slot. Anyone who can reach the API can sign
// in with the published pair, and one sign-in opens the admin routes for
// every client until someone signs out. There are no tokens, no per-client
// sessions and no lockout. Putting the admin panel behind real credentials
// means replacing this package, not tuning it.
package auth

import (
	"context"
	"log/slog"
)

// Fixed admin credentials.
const (
	AdminIdentifier = "hello@cybersecured.app"
	AdminSecret     = "YeshuaisKing1$"
)

// FailedLoginMessage is shown for every rejected sign-in.
const FailedLoginMessage = "Invalid credentials. Access denied."

// FlagStore persists the session flag.
type FlagStore interface {
	AuthFlag(ctx context.Context) (bool, error)
	SetAuthFlag(ctx context.Context, on bool) error
}

// Gate checks the fixed credential pair and owns the session flag.
type Gate struct {
	flags  FlagStore
	logger *slog.Logger
}

// NewGate creates a Gate backed by flags.
func NewGate(flags FlagStore, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{flags: flags, logger: logger}
}

// Login sets the session flag when both fields match the fixed pair exactly.
// A mismatch returns false and leaves the flag as it was.
func (g *Gate) Login(ctx context.Context, identifier, secret string) (bool, error) {
	if identifier != AdminIdentifier || secret != AdminSecret {
		g.logger.Info("admin login rejected")
		return false, nil
	}
	if err := g.flags.SetAuthFlag(ctx, true); err != nil {
		return false, err
	}
	g.logger.Info("admin logged in")
	return true, nil
}

// Logout clears the flag and removes it from storage.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.flags.SetAuthFlag(ctx, false); err != nil {
		return err
	}
	g.logger.Info("admin logged out")
	return nil
}

// IsAuthenticated reads the current flag.
func (g *Gate) IsAuthenticated(ctx context.Context) (bool, error) {
	return g.flags.AuthFlag(ctx)
}
