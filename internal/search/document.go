// Package search provides full-text product search using Bleve.
package search

import (
	"strings"

	"github.com/helojet/helojet-server/internal/domain"
)

// ProductDocument is what the index stores for one product.
type ProductDocument struct {
	ID               string
	Slug             string
	ASIN             string
	Title            string
	ShortDescription string
	// Description is the bullet list joined into one text field.
	Description string
	Price       float64
	Featured    bool
}

// ToMap converts the document to a map whose keys match the index mapping.
func (d *ProductDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":       d.ID,
		"slug":     d.Slug,
		"title":    d.Title,
		"price":    d.Price,
		"featured": "false",
	}
	if d.Featured {
		m["featured"] = "true"
	}
	if d.ASIN != "" {
		m["asin"] = strings.ToLower(d.ASIN)
	}
	if d.ShortDescription != "" {
		m["short_description"] = d.ShortDescription
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}

// ProductToDocument converts a catalog product to its index document.
func ProductToDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		ID:               p.ID,
		Slug:             p.Slug,
		ASIN:             p.ASIN,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Description:      strings.Join(p.Description, "\n"),
		Price:            p.Price,
		Featured:         p.IsFeatured,
	}
}
