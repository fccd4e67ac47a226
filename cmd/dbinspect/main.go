// Package main prints what the storefront keeps in its durable slots.
//
// Usage:
//
//	DATA_PATH=~/HeloJet/data go run ./cmd/dbinspect
//	go run ./cmd/dbinspect -backend redis -redis-addr localhost:6379
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/store"
)

func main() {
	backend := flag.String("backend", envOr("STORE_BACKEND", kv.BackendBadger), "slot backend")
	dataPath := flag.String("data-path", envOr("DATA_PATH", os.ExpandEnv("$HOME/HeloJet/data")), "data directory")
	redisAddr := flag.String("redis-addr", envOr("REDIS_ADDR", "localhost:6379"), "redis address")
	flag.Parse()

	ctx := context.Background()

	slots, err := kv.Open(ctx, kv.Options{
		Backend:     *backend,
		DataPath:    *dataPath,
		RedisAddr:   *redisAddr,
		RedisPrefix: envOr("REDIS_PREFIX", "helojet:"),
	})
	if err != nil {
		log.Fatalf("Failed to open slots: %v", err)
	}

	s := store.New(slots, nil, nil)
	defer s.Close() //nolint:errcheck // read-only tool

	fmt.Printf("=== Slot Inspection (%s) ===\n\n", slots.Backend())

	products, err := s.List(ctx)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}

	featured := 0
	inlineImages := 0
	for _, p := range products {
		if p.IsFeatured {
			featured++
		}
		for _, img := range p.Images {
			if strings.HasPrefix(img.Src, "data:") {
				inlineImages++
			}
		}
		fmt.Printf("Product: %s\n", p.Title)
		fmt.Printf("  ID: %s  Slug: %s  ASIN: %s\n", p.ID, p.Slug, p.ASIN)
		fmt.Printf("  Price: %.2f (list %.2f)  Images: %d\n", p.Price, p.ListPrice, len(p.Images))
	}
	fmt.Println()

	authed, err := s.AuthFlag(ctx)
	if err != nil {
		log.Printf("Error reading auth flag: %v", err)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		log.Printf("Error reading settings: %v", err)
	}

	leads, err := s.ListLeads(ctx)
	if err != nil {
		log.Printf("Error reading leads: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Products: %d (featured %d, inline images %d)\n", len(products), featured, inlineImages)
	fmt.Printf("Admin signed in: %t\n", authed)
	fmt.Printf("Chat widget configured: %t (%d bytes)\n", settings.ChatWidgetCode != "", len(settings.ChatWidgetCode))
	fmt.Printf("Leads: %d\n", len(leads))
	if len(leads) > 0 {
		last := leads[len(leads)-1]
		fmt.Printf("Latest lead: %s <%s> on %s\n", last.Name, last.Email, last.Date)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
