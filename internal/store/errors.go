package store

import (
	domainerrors "github.com/helojet/helojet-server/internal/errors"
)

// ErrProductNotFound is returned by catalog lookups that match nothing.
var ErrProductNotFound = domainerrors.NotFound("Product not found.")
