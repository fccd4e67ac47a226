// Package main loads a product catalog into the storefront's slots.
//
// The file holds a JSON array of products in the stored format. Without
// -file the built-in launch catalog is written. Existing products are
// replaced unless -append is set.
//
// Usage:
//
//	DATA_PATH=~/HeloJet/data go run ./cmd/seed -file catalog.json
//	go run ./cmd/seed -append -file more.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/id"
	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/store"
	"github.com/helojet/helojet-server/internal/util"
)

var (
	file      = flag.String("file", "", "JSON file with an array of products (default: built-in catalog)")
	appendAll = flag.Bool("append", false, "Keep existing products")
	backend   = flag.String("backend", envOr("STORE_BACKEND", kv.BackendBadger), "slot backend")
	dataPath  = flag.String("data-path", envOr("DATA_PATH", os.ExpandEnv("$HOME/HeloJet/data")), "data directory")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	products := domain.SeedProducts()
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		products = nil
		if err := json.Unmarshal(raw, &products); err != nil {
			log.Fatalf("Failed to parse %s: %v", *file, err)
		}
	}

	slots, err := kv.Open(ctx, kv.Options{
		Backend:     *backend,
		DataPath:    *dataPath,
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		RedisPrefix: envOr("REDIS_PREFIX", "helojet:"),
	})
	if err != nil {
		log.Fatalf("Failed to open slots: %v", err)
	}

	s := store.New(slots, nil, nil)
	defer s.Close() //nolint:errcheck // exiting

	if !*appendAll {
		existing, err := s.List(ctx)
		if err != nil {
			log.Fatalf("Failed to read catalog: %v", err)
		}
		for _, p := range existing {
			if err := s.Remove(ctx, p.ID); err != nil {
				log.Fatalf("Failed to remove %s: %v", p.ID, err)
			}
		}
		fmt.Printf("Removed %d existing products\n", len(existing))
	}

	for i := range products {
		p := &products[i]
		if p.ID == "" {
			if p.ID, err = id.Short(""); err != nil {
				log.Fatalf("Failed to generate id: %v", err)
			}
		}
		if p.Slug == "" {
			p.Slug = util.ProductSlug(p.Title)
		}
		if err := s.Add(ctx, p); err != nil {
			log.Fatalf("Failed to add %q: %v", p.Title, err)
		}
		fmt.Printf("Added %s (%s)\n", p.Slug, p.ID)
	}

	fmt.Printf("Catalog now holds %d new products\n", len(products))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
