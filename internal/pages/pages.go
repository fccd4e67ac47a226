// Package pages serves the storefront's informational pages (privacy, terms,
// refunds, smart home services and contact) as HTML or markdown.
//
// Built-in pages are embedded templates filled with the company details.
// A page can be replaced by dropping <name>.html into the override
// directory; overrides are templates too and are reloaded when they change.
package pages

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/helojet/helojet-server/internal/domain"
	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/watcher"
)

//go:embed templates/*.html
var builtinFS embed.FS

// Format selects the page rendition.
type Format string

// Page renditions.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Names of the informational pages.
var Names = []string{"privacy", "terms", "refunds", "smart-home", "contact"}

var titles = map[string]string{
	"privacy":    "Privacy Policy",
	"terms":      "Terms of Service",
	"refunds":    "Refund Policy",
	"smart-home": "Smart Home Planning Services",
	"contact":    "Contact Us",
}

// ErrPageNotFound is returned for names outside Names.
var ErrPageNotFound = domainerrors.NotFound("Page not found.")

// Page is a rendered page.
type Page struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Format Format `json:"format"`
	Body   string `json:"body"`
	// Override is true when the page came from the override directory.
	Override bool `json:"override"`
}

type pageData struct {
	Company     domain.CompanyInfo
	LastUpdated string
}

// Library renders pages.
type Library struct {
	logger      *slog.Logger
	company     domain.CompanyInfo
	overrideDir string
	now         func() time.Time

	builtin *template.Template

	mu        sync.RWMutex
	overrides map[string]*template.Template
}

// New parses the built-in pages and loads any overrides from overrideDir.
// An empty overrideDir disables overrides.
func New(company domain.CompanyInfo, overrideDir string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	builtin, err := template.ParseFS(builtinFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse built-in pages: %w", err)
	}

	l := &Library{
		logger:      logger,
		company:     company,
		overrideDir: overrideDir,
		now:         time.Now,
		builtin:     builtin,
		overrides:   make(map[string]*template.Template),
	}

	if overrideDir != "" {
		if err := l.Reload(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Render returns page name in the requested format. An empty format means HTML.
func (l *Library) Render(name string, format Format) (*Page, error) {
	if !slices.Contains(Names, name) {
		return nil, ErrPageNotFound
	}

	switch format {
	case "", FormatHTML:
		format = FormatHTML
	case FormatMarkdown:
	default:
		return nil, domainerrors.Validationf("unknown format %q", format)
	}

	l.mu.RLock()
	tmpl, override := l.overrides[name]
	l.mu.RUnlock()
	if !override {
		tmpl = l.builtin.Lookup(name + ".html")
	}

	data := pageData{
		Company:     l.company,
		LastUpdated: l.now().Format("1/2/2006"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page %s: %w", name, err)
	}

	body := strings.TrimSpace(buf.String())
	if format == FormatMarkdown {
		md, err := htmltomarkdown.ConvertString(body)
		if err != nil {
			return nil, fmt.Errorf("convert page %s to markdown: %w", name, err)
		}
		body = strings.TrimSpace(md)
	}

	return &Page{
		Name:     name,
		Title:    titles[name],
		Format:   format,
		Body:     body,
		Override: override,
	}, nil
}

// Reload re-reads every override file. Files that fail to parse are
// skipped and the built-in page is served instead.
func (l *Library) Reload() error {
	if l.overrideDir == "" {
		return nil
	}

	overrides := make(map[string]*template.Template)
	for _, name := range Names {
		tmpl, err := l.loadOverride(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			l.logger.Warn("page override skipped",
				slog.String("page", name),
				slog.String("error", err.Error()))
			continue
		}
		overrides[name] = tmpl
	}

	l.mu.Lock()
	l.overrides = overrides
	l.mu.Unlock()

	l.logger.Debug("page overrides loaded", slog.Int("count", len(overrides)))
	return nil
}

func (l *Library) loadOverride(name string) (*template.Template, error) {
	data, err := os.ReadFile(filepath.Join(l.overrideDir, name+".html"))
	if err != nil {
		return nil, err
	}
	return template.New(name + ".html").Parse(string(data))
}

// Watch reloads overrides whenever a file in the override directory settles.
// It blocks until ctx is canceled.
func (l *Library) Watch(ctx context.Context) error {
	if l.overrideDir == "" {
		<-ctx.Done()
		return nil
	}

	w, err := watcher.New(l.logger, watcher.Options{Extensions: []string{".html"}})
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // best-effort close on shutdown

	if err := w.Watch(l.overrideDir); err != nil {
		return err
	}
	go w.Start(ctx) //nolint:errcheck // returns only nil

	l.logger.Info("watching page overrides", slog.String("path", l.overrideDir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events():
			l.logger.Info("page override changed",
				slog.String("path", ev.Path),
				slog.String("op", string(ev.Op)))
			if err := l.Reload(); err != nil {
				l.logger.Warn("page override reload failed", slog.String("error", err.Error()))
			}
		case err := <-w.Errors():
			l.logger.Warn("page override watcher error", slog.String("error", err.Error()))
		}
	}
}
