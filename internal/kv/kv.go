// Package kv provides durable string-keyed slots holding opaque byte values.
//
// A slot is replaced as a whole on every write; there are no partial updates.
// Several engines implement the same contract so the storefront can run on
// an embedded database or on a shared Redis.
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when a slot has never been written or was deleted.
var ErrNotFound = errors.New("kv: slot not found")

// Store is a set of durable slots.
type Store interface {
	// Get returns the value of a slot or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value of a slot.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error
	// Ping verifies the engine is reachable.
	Ping(ctx context.Context) error
	// Backend names the engine, e.g. "badger".
	Backend() string
	Close() error
}

// Supported backends.
const (
	BackendBadger = "badger"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// DataPath is the directory embedded engines write into.
	DataPath string
	// RedisAddr and RedisPrefix configure the redis backend.
	RedisAddr   string
	RedisPrefix string
}

// Open creates the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.Backend != BackendMemory && opts.Backend != BackendRedis {
		if opts.DataPath == "" {
			return nil, fmt.Errorf("kv: data path required for %s backend", opts.Backend)
		}
		if err := os.MkdirAll(opts.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("kv: create data path: %w", err)
		}
	}

	switch opts.Backend {
	case BackendBadger, "":
		return OpenBadger(filepath.Join(opts.DataPath, "slots.badger"))
	case BackendBolt:
		return OpenBolt(filepath.Join(opts.DataPath, "slots.bolt"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(opts.DataPath, "slots.db"))
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", opts.Backend)
	}
}
