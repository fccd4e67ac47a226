package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/store"
	"github.com/helojet/helojet-server/internal/validation"
)

// WidgetScript is a script element taken out of the chat widget markup.
// Pages recreate it so the browser executes it.
type WidgetScript struct {
	Attributes map[string]string `json:"attributes"`
	Text       string            `json:"text,omitempty"`
}

// ChatWidget is the widget markup split into inert markup and scripts.
type ChatWidget struct {
	// Enabled is false when no widget code is configured and pages show the placeholder badge.
	Enabled bool           `json:"enabled"`
	Markup  string         `json:"markup"`
	Scripts []WidgetScript `json:"scripts"`
}

// PublicSettings is what every page reads.
type PublicSettings struct {
	domain.SiteSettings
	ChatWidget ChatWidget `json:"chatWidget"`
}

// SettingsUpdate is the admin settings form.
type SettingsUpdate struct {
	ChatWidgetCode string `json:"chatWidgetCode" validate:"max=65536"`
}

// SettingsService reads and writes site settings.
type SettingsService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsService{store: store, validator: validator, logger: logger}
}

// Get returns the stored settings with the widget prepared for injection.
func (s *SettingsService) Get(ctx context.Context) (*PublicSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	widget, err := ParseChatWidget(settings.ChatWidgetCode)
	if err != nil {
		// Broken markup must not take the pages down with it.
		s.logger.Warn("chat widget markup did not parse", slog.String("error", err.Error()))
		widget = ChatWidget{Scripts: []WidgetScript{}}
	}
	return &PublicSettings{SiteSettings: settings, ChatWidget: widget}, nil
}

// Save replaces the settings.
func (s *SettingsService) Save(ctx context.Context, update SettingsUpdate) (*PublicSettings, error) {
	if err := s.validator.Validate(update); err != nil {
		return nil, err
	}
	if err := s.store.SaveSettings(ctx, domain.SiteSettings(update)); err != nil {
		return nil, err
	}
	s.logger.Info("site settings saved", slog.Bool("chat_widget", strings.TrimSpace(update.ChatWidgetCode) != ""))
	return s.Get(ctx)
}

// ParseChatWidget splits widget code into its top-level script elements and
// the remaining markup. Blank code yields a disabled widget.
func ParseChatWidget(code string) (ChatWidget, error) {
	widget := ChatWidget{Scripts: []WidgetScript{}}
	if strings.TrimSpace(code) == "" {
		return widget, nil
	}
	widget.Enabled = true

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(code), parent)
	if err != nil {
		return ChatWidget{}, fmt.Errorf("parse widget markup: %w", err)
	}

	var markup strings.Builder
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			widget.Scripts = append(widget.Scripts, scriptFromNode(n))
			continue
		}
		if err := html.Render(&markup, n); err != nil {
			return ChatWidget{}, fmt.Errorf("render widget markup: %w", err)
		}
	}
	widget.Markup = markup.String()
	return widget, nil
}

func scriptFromNode(n *html.Node) WidgetScript {
	script := WidgetScript{Attributes: make(map[string]string, len(n.Attr))}
	for _, a := range n.Attr {
		script.Attributes[a.Key] = a.Val
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	script.Text = text.String()
	return script
}
