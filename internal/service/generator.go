package service

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/helojet/helojet-server/internal/domain"
	domainerrors "github.com/helojet/helojet-server/internal/errors"
)

// UnknownASIN is used when a marketplace URL carries no recognizable ASIN.
const UnknownASIN = "UNKNOWN_ASIN"

var asinPattern = regexp.MustCompile(`(?:dp|gp/product)/([A-Z0-9]{10})`)

// ExtractASIN returns the ASIN from an Amazon product URL, or UnknownASIN.
func ExtractASIN(amazonURL string) string {
	if m := asinPattern.FindStringSubmatch(amazonURL); m != nil {
		return m[1]
	}
	return UnknownASIN
}

const stockPhotoQuery = "?auto=format&fit=crop&w=1000&q=80"

// Generator fills a draft with canned listing copy for an Amazon URL.
// It stands in for a content generation backend and never leaves the process.
type Generator struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewGenerator creates a generator that waits delay before answering.
func NewGenerator(delay time.Duration, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{delay: delay, logger: logger}
}

// Listing is the generated part of a product listing.
type Listing struct {
	ASIN             string
	AmazonURL        string
	Title            string
	Slug             string
	ShortDescription string
	Description      []string
	Price            float64
	ListPrice        float64
	Images           []domain.ProductImage
	Overview         string
	Features         []string
	TargetAudience   []string
	SetupText        string
}

// Apply overwrites the generated fields of p. Fields a listing does not
// carry (id, rating, review count, featured flag) are left alone.
func (l *Listing) Apply(p *domain.Product) {
	p.ASIN = l.ASIN
	p.AmazonURL = l.AmazonURL
	p.Title = l.Title
	p.Slug = l.Slug
	p.ShortDescription = l.ShortDescription
	p.Description = slices.Clone(l.Description)
	p.Price = l.Price
	p.ListPrice = l.ListPrice
	p.Images = slices.Clone(l.Images)
	p.Overview = l.Overview
	p.Features = slices.Clone(l.Features)
	p.TargetAudience = slices.Clone(l.TargetAudience)
	p.SetupText = l.SetupText
}

// Generate waits the configured delay and returns listing content for
// amazonURL.
func (g *Generator) Generate(ctx context.Context, amazonURL string) (*Listing, error) {
	if strings.TrimSpace(amazonURL) == "" {
		return nil, domainerrors.Validation("Please enter an Amazon URL first.")
	}

	asin := ExtractASIN(amazonURL)

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	l := &Listing{
		ASIN:             asin,
		AmazonURL:        amazonURL,
		Title:            "AI Generated: Premium Smart Home Device (" + asin + ")",
		Slug:             "product-" + strings.ToLower(asin),
		ShortDescription: "This content was automatically generated. The product features reliable connectivity and simple setup.",
		Description: []string{
			"Reliable Connectivity: Features self-healing Wi-Fi for uninterrupted performance.",
			"Smart App Integration: Works seamlessly with companion mobile app for easy management.",
			"Compact Design: Fits perfectly in any home office or living room environment.",
			"Energy Efficient: Designed to reduce power consumption while maintaining high performance.",
			"Secure: Built with industry-standard security features to protect your data.",
		},
		Price:     89.99,
		ListPrice: 119.99,
		Images: []domain.ProductImage{
			{Src: "https://images-na.ssl-images-amazon.com/images/P/" + asin + ".01._SCLZZZZZZZ_.jpg", Alt: "Main Product View"},
			{Src: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b" + stockPhotoQuery, Alt: "Lifestyle Office Context"},
			{Src: "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f" + stockPhotoQuery, Alt: "Product Detail Shot"},
			{Src: "https://images.unsplash.com/photo-1593642702821-c8da6771f0c6" + stockPhotoQuery, Alt: "Usage Context"},
			{Src: "https://images.unsplash.com/photo-1629757697332-9cb52c418706" + stockPhotoQuery, Alt: "Packaging / In the Box"},
		},
		Overview: "Experience the next level of smart home integration with this device. It combines sleek aesthetics with powerful performance, ensuring it not only looks good but works flawlessly.",
		Features: []string{
			"Voice Control: Compatible with major voice assistants.",
			"Automated Scheduling: Set routines to automate your day.",
			"Remote Access: Control from anywhere via the cloud.",
		},
		TargetAudience: []string{
			"Tech Enthusiasts: Love bleeding edge tech.",
			"Busy Families: Need automation to save time.",
			"Remote Workers: Enhance productivity.",
		},
		SetupText: "Setup takes less than 5 minutes. Download the app, scan the QR code on the device, and follow the on-screen instructions.",
	}

	g.logger.Info("generated listing content", slog.String("asin", asin))
	return l, nil
}
