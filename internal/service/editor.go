package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/helojet/helojet-server/internal/domain"
	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/id"
	"github.com/helojet/helojet-server/internal/media/images"
	"github.com/helojet/helojet-server/internal/store"
	"github.com/helojet/helojet-server/internal/util"
	"github.com/helojet/helojet-server/internal/validation"
)

// DefaultImageAlt is the alt text of images added by URL.
const DefaultImageAlt = "Product Image"

// AdminHome is where the client goes after a commit.
const AdminHome = "/admin"

// ErrDraftNotFound is returned for unknown or expired drafts.
var ErrDraftNotFound = domainerrors.NotFound("Draft not found.")

// Draft is an in-progress product edit.
type Draft struct {
	ID      string          `json:"id"`
	Product *domain.Product `json:"product"`
	// Editing is true when the draft was opened from an existing product.
	Editing   bool      `json:"editing"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Draft) clone() *Draft {
	c := *d
	c.Product = d.Product.Clone()
	return &c
}

// DraftPatch sets scalar product fields. Nil fields are left alone.
type DraftPatch struct {
	Slug             *string  `json:"slug,omitempty" validate:"omitempty,max=200"`
	ASIN             *string  `json:"asin,omitempty" validate:"omitempty,max=20"`
	Title            *string  `json:"title,omitempty" validate:"omitempty,max=500"`
	ShortDescription *string  `json:"shortDescription,omitempty"`
	Price            *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	ListPrice        *float64 `json:"listPrice,omitempty" validate:"omitempty,gte=0"`
	Rating           *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount      *int     `json:"reviewCount,omitempty" validate:"omitempty,gte=0"`
	AmazonURL        *string  `json:"amazonUrl,omitempty"`
	IsFeatured       *bool    `json:"isFeatured,omitempty"`
	Overview         *string  `json:"overview,omitempty"`
	SetupText        *string  `json:"setupText,omitempty"`
}

func (p *DraftPatch) apply(dst *domain.Product) {
	setIf(&dst.Slug, p.Slug)
	setIf(&dst.ASIN, p.ASIN)
	setIf(&dst.Title, p.Title)
	setIf(&dst.ShortDescription, p.ShortDescription)
	setIf(&dst.Price, p.Price)
	setIf(&dst.ListPrice, p.ListPrice)
	setIf(&dst.Rating, p.Rating)
	setIf(&dst.ReviewCount, p.ReviewCount)
	setIf(&dst.AmazonURL, p.AmazonURL)
	setIf(&dst.IsFeatured, p.IsFeatured)
	setIf(&dst.Overview, p.Overview)
	setIf(&dst.SetupText, p.SetupText)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// commitCheck holds the fields a product needs before it is saved.
type commitCheck struct {
	Title     string  `json:"title" validate:"nonblank"`
	Slug      string  `json:"slug" validate:"nonblank"`
	ASIN      string  `json:"asin" validate:"nonblank"`
	AmazonURL string  `json:"amazonUrl" validate:"required,http_url"`
	Price     float64 `json:"price" validate:"gte=0"`
	ListPrice float64 `json:"listPrice" validate:"gte=0"`
}

// CommitResult reports what a commit did.
type CommitResult struct {
	Product *domain.Product `json:"product"`
	// Created is true when the product was appended rather than updated.
	Created bool `json:"created"`
	// Applied is false when an update matched no stored product.
	Applied    bool   `json:"applied"`
	RedirectTo string `json:"redirectTo"`
}

// UploadResult is the draft after an image upload plus any size warning.
type UploadResult struct {
	Draft   *Draft `json:"draft"`
	Warning string `json:"warning,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// EditorService keeps drafts of catalog edits in memory until they are
// committed, discarded or expire.
type EditorService struct {
	mu     sync.Mutex
	drafts map[string]*Draft

	store     *store.Store
	images    *images.Processor
	generator *Generator
	validator *validation.Validator
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time
}

// NewEditorService creates an editor. A zero ttl keeps drafts until they
// are committed or discarded.
func NewEditorService(
	store *store.Store,
	processor *images.Processor,
	generator *Generator,
	validator *validation.Validator,
	ttl time.Duration,
	logger *slog.Logger,
) *EditorService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EditorService{
		drafts:    make(map[string]*Draft),
		store:     store,
		images:    processor,
		generator: generator,
		validator: validator,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
	}
}

// NewDraft opens a draft for a brand new product.
func (s *EditorService) NewDraft(ctx context.Context) (*Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	productID, err := id.Short("")
	if err != nil {
		return nil, err
	}
	return s.open(domain.NewDraftProduct(productID), false)
}

// EditDraft opens a draft holding a copy of the stored product with productID.
func (s *EditorService) EditDraft(ctx context.Context, productID string) (*Draft, error) {
	p, err := s.store.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.PrepareForEdit()
	return s.open(p, true)
}

func (s *EditorService) open(p *domain.Product, editing bool) (*Draft, error) {
	draftID, err := id.Generate("draft")
	if err != nil {
		return nil, err
	}
	now := s.now()
	d := &Draft{ID: draftID, Product: p, Editing: editing, CreatedAt: now, UpdatedAt: now}

	s.mu.Lock()
	s.drafts[draftID] = d
	s.mu.Unlock()

	s.logger.Debug("draft opened",
		slog.String("draft_id", draftID),
		slog.String("product_id", p.ID),
		slog.Bool("editing", editing))
	return d.clone(), nil
}

// GetDraft returns a copy of the draft.
func (s *EditorService) GetDraft(_ context.Context, draftID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d.clone(), nil
}

// DiscardDraft drops the draft without saving.
func (s *EditorService) DiscardDraft(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[draftID]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, draftID)
	return nil
}

// edit runs fn on the live draft under the lock and returns a copy of the result.
func (s *EditorService) edit(draftID string, fn func(p *domain.Product) error) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if err := fn(d.Product); err != nil {
		return nil, err
	}
	d.UpdatedAt = s.now()
	return d.clone(), nil
}

// PatchDraft sets scalar fields of the draft.
func (s *EditorService) PatchDraft(_ context.Context, draftID string, patch DraftPatch) (*Draft, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}
	return s.edit(draftID, func(p *domain.Product) error {
		patch.apply(p)
		return nil
	})
}

// SetArrayItem overwrites one bullet of description, features or targetAudience.
func (s *EditorService) SetArrayItem(_ context.Context, draftID, field string, index int, value string) (*Draft, error) {
	f, err := parseArrayField(field)
	if err != nil {
		return nil, err
	}
	return s.edit(draftID, func(p *domain.Product) error {
		return indexErr(p.SetArrayItem(f, index, value))
	})
}

// AddArrayItem appends an empty bullet.
func (s *EditorService) AddArrayItem(_ context.Context, draftID, field string) (*Draft, error) {
	f, err := parseArrayField(field)
	if err != nil {
		return nil, err
	}
	return s.edit(draftID, func(p *domain.Product) error {
		p.AddArrayItem(f)
		return nil
	})
}

// RemoveArrayItem deletes one bullet.
func (s *EditorService) RemoveArrayItem(_ context.Context, draftID, field string, index int) (*Draft, error) {
	f, err := parseArrayField(field)
	if err != nil {
		return nil, err
	}
	return s.edit(draftID, func(p *domain.Product) error {
		return indexErr(p.RemoveArrayItem(f, index))
	})
}

// AddImageURL appends an image referenced by URL.
func (s *EditorService) AddImageURL(_ context.Context, draftID, url string) (*Draft, error) {
	if err := s.validator.Var("url", url, "required,image_src"); err != nil {
		return nil, err
	}
	return s.edit(draftID, func(p *domain.Product) error {
		p.AddImage(domain.ProductImage{Src: url, Alt: DefaultImageAlt})
		return nil
	})
}

// AddImageUpload appends an uploaded file as an inline data URI. Files over
// the size threshold are added with a warning.
func (s *EditorService) AddImageUpload(_ context.Context, draftID, name string, data []byte) (*UploadResult, error) {
	inlined, err := s.images.Inline(name, data)
	if err != nil {
		return nil, domainerrors.Validation("Please upload an image file.").WithCause(err)
	}
	d, err := s.edit(draftID, func(p *domain.Product) error {
		p.AddImage(inlined.Image)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Draft:   d,
		Warning: inlined.Warning,
		Width:   inlined.Width,
		Height:  inlined.Height,
	}, nil
}

// RemoveImage deletes the gallery image at index.
func (s *EditorService) RemoveImage(_ context.Context, draftID string, index int) (*Draft, error) {
	return s.edit(draftID, func(p *domain.Product) error {
		return indexErr(p.RemoveImage(index))
	})
}

// MoveImage moves the gallery image at from to position to.
func (s *EditorService) MoveImage(_ context.Context, draftID string, from, to int) (*Draft, error) {
	return s.edit(draftID, func(p *domain.Product) error {
		return indexErr(p.MoveImage(from, to))
	})
}

// Generate fills a new draft with generated listing content for amazonURL.
// The wait happens outside the lock; edits made meanwhile to fields the
// listing does not carry survive.
func (s *EditorService) Generate(ctx context.Context, draftID, amazonURL string) (*Draft, error) {
	d, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.Editing {
		return nil, domainerrors.Validation("Content generation is only available for new products.")
	}

	listing, err := s.generator.Generate(ctx, amazonURL)
	if err != nil {
		return nil, err
	}

	return s.edit(draftID, func(p *domain.Product) error {
		listing.Apply(p)
		return nil
	})
}

// Commit saves the draft to the catalog and closes it. A draft opened from
// an existing product updates it; any other draft is appended. An empty
// slug is derived from the title. A typed slug is normalized on new
// products only, so committing an edit never moves a published URL.
func (s *EditorService) Commit(ctx context.Context, draftID string) (*CommitResult, error) {
	d, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	p := d.Product
	switch {
	case p.Slug == "":
		p.Slug = util.ProductSlug(p.Title)
	case !d.Editing:
		p.Slug = util.NormalizeSlug(p.Slug)
	}

	check := commitCheck{
		Title:     p.Title,
		Slug:      p.Slug,
		ASIN:      p.ASIN,
		AmazonURL: p.AmazonURL,
		Price:     p.Price,
		ListPrice: p.ListPrice,
	}
	if err := s.validator.Validate(check); err != nil {
		return nil, err
	}

	result := &CommitResult{Product: p, Created: !d.Editing, Applied: true, RedirectTo: AdminHome}
	if d.Editing {
		result.Applied, err = s.store.Update(ctx, p)
	} else {
		err = s.store.Add(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()

	s.logger.Info("draft committed",
		slog.String("draft_id", draftID),
		slog.String("product_id", p.ID),
		slog.Bool("created", result.Created),
		slog.Bool("applied", result.Applied))
	return result, nil
}

// CleanupExpired drops drafts not touched since the TTL and returns how many went.
func (s *EditorService) CleanupExpired(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for draftID, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, draftID)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired drafts removed", slog.Int("count", removed))
	}
	return removed
}

// DraftCount returns the number of open drafts.
func (s *EditorService) DraftCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func parseArrayField(field string) (domain.ArrayField, error) {
	f, err := domain.ParseArrayField(field)
	if err != nil {
		return "", domainerrors.Validationf("unknown list %q", field)
	}
	return f, nil
}

func indexErr(err error) error {
	var ie domain.IndexError
	if errors.As(err, &ie) {
		return domainerrors.ValidationWithDetails(
			fmt.Sprintf("position %d is out of range", ie.Index),
			map[string]int{"index": ie.Index, "length": ie.Len})
	}
	return err
}
