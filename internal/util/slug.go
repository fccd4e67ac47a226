// Package util provides small helpers shared by services.
package util

import (
	"strings"

	"github.com/gosimple/slug"
)

// ProductSlug derives a URL slug from a product title.
//
//	"HeloJet C200 Wireless Printer" → "helojet-c200-wireless-printer"
//	"Café & Co."                    → "cafe-and-co"
func ProductSlug(title string) string {
	return slug.MakeLang(strings.TrimSpace(title), "en")
}

// NormalizeSlug cleans a slug typed by an editor. An input that is already
// a valid slug is returned unchanged.
func NormalizeSlug(input string) string {
	s := strings.TrimSpace(input)
	if slug.IsSlug(s) {
		return s
	}
	return slug.Make(s)
}
