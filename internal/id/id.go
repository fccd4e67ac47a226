// Package id generates opaque identifiers for catalog records, drafts and connections.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// base36 is the alphabet of product ids already stored in existing catalogs.
const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// shortLength is the length of the random part of a Short id.
const shortLength = 9

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "draft-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Short creates a compact lowercase id such as "k3j9x0a2q".
// Product ids use this form so records created here look like the ones
// already sitting in existing catalogs. An empty prefix yields the bare token.
func Short(prefix string) (string, error) {
	token, err := gonanoid.Generate(base36, shortLength)
	if err != nil {
		return "", fmt.Errorf("generate short id: %w", err)
	}
	if prefix == "" {
		return token, nil
	}
	return prefix + "-" + token, nil
}
