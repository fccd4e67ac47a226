// Package domain contains the storefront's core records: products, leads and site settings.
package domain

import (
	"fmt"
	"slices"
)

// ProductImage is a single entry of a product gallery.
// Src is either a URL or an inline data URI.
type ProductImage struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	BlurHash string `json:"blurHash,omitempty"`
}

// Product is a catalog listing. JSON names match the records already
// persisted by the storefront so existing catalogs load unchanged.
type Product struct {
	ID               string         `json:"id"`
	Slug             string         `json:"slug"`
	ASIN             string         `json:"asin"`
	Title            string         `json:"title"`
	ShortDescription string         `json:"shortDescription"`
	Description      []string       `json:"description"`
	Price            float64        `json:"price"`
	ListPrice        float64        `json:"listPrice"`
	Rating           float64        `json:"rating"`
	ReviewCount      int            `json:"reviewCount"`
	Images           []ProductImage `json:"images"`
	AmazonURL        string         `json:"amazonUrl"`
	IsFeatured       bool           `json:"isFeatured,omitempty"`

	// Long-form copy.
	Overview       string   `json:"overview,omitempty"`
	Features       []string `json:"features,omitzero" required:"false"`
	TargetAudience []string `json:"targetAudience,omitzero" required:"false"`
	SetupText      string   `json:"setupText,omitempty"`
}

// Draft defaults for a brand new listing.
const (
	DefaultDraftRating      = 4.5
	DefaultDraftReviewCount = 100
)

// NewDraftProduct returns an empty listing with editor defaults.
func NewDraftProduct(id string) *Product {
	return &Product{
		ID:             id,
		Description:    []string{""},
		Rating:         DefaultDraftRating,
		ReviewCount:    DefaultDraftReviewCount,
		Images:         []ProductImage{},
		Features:       []string{""},
		TargetAudience: []string{""},
	}
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	c := *p
	c.Description = slices.Clone(p.Description)
	c.Images = slices.Clone(p.Images)
	c.Features = slices.Clone(p.Features)
	c.TargetAudience = slices.Clone(p.TargetAudience)
	return &c
}

// PrepareForEdit fills the long-form arrays that older records may lack.
func (p *Product) PrepareForEdit() {
	if p.Features == nil {
		p.Features = []string{""}
	}
	if p.TargetAudience == nil {
		p.TargetAudience = []string{""}
	}
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}

// ArrayField names one of the editable bullet lists of a product.
type ArrayField string

// Editable bullet lists.
const (
	FieldDescription    ArrayField = "description"
	FieldFeatures       ArrayField = "features"
	FieldTargetAudience ArrayField = "targetAudience"
)

// ParseArrayField validates a field name.
func ParseArrayField(s string) (ArrayField, error) {
	switch f := ArrayField(s); f {
	case FieldDescription, FieldFeatures, FieldTargetAudience:
		return f, nil
	default:
		return "", fmt.Errorf("unknown array field %q", s)
	}
}

func (p *Product) array(f ArrayField) *[]string {
	switch f {
	case FieldFeatures:
		return &p.Features
	case FieldTargetAudience:
		return &p.TargetAudience
	default:
		return &p.Description
	}
}

// Array returns the current items of a bullet list.
func (p *Product) Array(f ArrayField) []string {
	return *p.array(f)
}

// SetArrayItem overwrites one item of a bullet list.
func (p *Product) SetArrayItem(f ArrayField, index int, value string) error {
	items := p.array(f)
	if index < 0 || index >= len(*items) {
		return IndexError{Index: index, Len: len(*items)}
	}
	(*items)[index] = value
	return nil
}

// AddArrayItem appends an empty item to a bullet list.
func (p *Product) AddArrayItem(f ArrayField) {
	items := p.array(f)
	*items = append(*items, "")
}

// RemoveArrayItem deletes one item of a bullet list.
func (p *Product) RemoveArrayItem(f ArrayField, index int) error {
	items := p.array(f)
	if index < 0 || index >= len(*items) {
		return IndexError{Index: index, Len: len(*items)}
	}
	*items = slices.Delete(*items, index, index+1)
	return nil
}

// AddImage appends an image to the end of the gallery.
func (p *Product) AddImage(img ProductImage) {
	p.Images = append(p.Images, img)
}

// RemoveImage deletes the image at index. The gallery may become empty.
func (p *Product) RemoveImage(index int) error {
	if index < 0 || index >= len(p.Images) {
		return IndexError{Index: index, Len: len(p.Images)}
	}
	p.Images = slices.Delete(p.Images, index, index+1)
	return nil
}

// MoveImage takes the image at from out of the gallery and inserts it at
// position to of the remaining list. Other images keep their relative order.
// Moving an image onto its own index leaves the gallery untouched.
func (p *Product) MoveImage(from, to int) error {
	n := len(p.Images)
	if from < 0 || from >= n {
		return IndexError{Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return IndexError{Index: to, Len: n}
	}
	if from == to {
		return nil
	}

	img := p.Images[from]
	p.Images = slices.Delete(p.Images, from, from+1)
	p.Images = slices.Insert(p.Images, to, img)
	return nil
}

// Savings is the list price discount in currency units.
func (p *Product) Savings() float64 {
	return p.ListPrice - p.Price
}

// SavingsPercent is the discount rounded to a whole percent.
// A zero list price yields 0.
func (p *Product) SavingsPercent() int {
	if p.ListPrice == 0 {
		return 0
	}
	return int(roundHalfUp(p.Savings() / p.ListPrice * 100))
}

// IndexError reports a list position outside the list.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for list of %d", e.Index, e.Len)
}
