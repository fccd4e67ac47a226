package store

import (
	"context"
	"errors"

	"github.com/helojet/helojet-server/internal/kv"
)

// AuthFlag reports whether the admin session flag is set.
// Anything other than the exact stored value counts as signed out.
func (s *Store) AuthFlag(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := s.slots.Get(ctx, keyAuth)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(data) == authFlagValue, nil
}

// SetAuthFlag persists the flag, or removes the slot entirely when on is false.
func (s *Store) SetAuthFlag(ctx context.Context, on bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		return s.slots.Set(ctx, keyAuth, []byte(authFlagValue))
	}
	return s.slots.Delete(ctx, keyAuth)
}
