package domain

// SiteSettings holds site-wide integration settings.
type SiteSettings struct {
	// ChatWidgetCode is third-party markup injected into every page.
	ChatWidgetCode string `json:"chatWidgetCode"`
}
