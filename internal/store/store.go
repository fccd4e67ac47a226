// Package store keeps the storefront's durable state: the product catalog,
// the admin session flag, site settings and captured leads.
//
// Every value lives in one kv slot and is read from the slot on every call,
// so the slot is the single source of truth. Mutations rewrite the whole
// value.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/kv"
)

// EventEmitter is the interface for emitting SSE events.
// Store uses this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer keeps the product search index in step with the catalog.
// Failures are logged; they never fail the store operation.
type SearchIndexer interface {
	IndexProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexProduct is a no-op.
func (NoopSearchIndexer) IndexProduct(context.Context, *domain.Product) error { return nil }

// DeleteProduct is a no-op.
func (NoopSearchIndexer) DeleteProduct(context.Context, string) error { return nil }

// Store wraps a set of kv slots.
type Store struct {
	slots  kv.Store
	logger *slog.Logger

	// mu serializes read-modify-write cycles on the slots.
	mu sync.Mutex

	eventEmitter EventEmitter

	// Set via SetSearchIndexer after creation; the search service reads the catalog to rebuild.
	searchIndexer SearchIndexer
}

// New creates a Store on top of slots. A nil emitter disables change events.
func New(slots kv.Store, logger *slog.Logger, emitter EventEmitter) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &Store{
		slots:         slots,
		logger:        logger,
		eventEmitter:  emitter,
		searchIndexer: NoopSearchIndexer{},
	}
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexer == nil {
		indexer = NoopSearchIndexer{}
	}
	s.searchIndexer = indexer
}

// Backend names the slot engine.
func (s *Store) Backend() string {
	return s.slots.Backend()
}

// Ping checks the slot engine.
func (s *Store) Ping(ctx context.Context) error {
	return s.slots.Ping(ctx)
}

// Close closes the slot engine.
func (s *Store) Close() error {
	s.logger.Info("Closing slot store", slog.String("backend", s.slots.Backend()))
	return s.slots.Close()
}

// errMalformed marks slot content that exists but does not decode.
var errMalformed = errors.New("malformed slot content")

// loadJSON decodes the slot at key into dest.
// It returns kv.ErrNotFound for an absent slot and errMalformed for bad content.
func (s *Store) loadJSON(ctx context.Context, key string, dest any) error {
	data, err := s.slots.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("ignoring malformed slot content",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return errMalformed
	}
	return nil
}

// saveJSON replaces the slot at key with the JSON encoding of value.
func (s *Store) saveJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.slots.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
