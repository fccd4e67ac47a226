package api

// API limits and constants.
const (
	// MaxUploadSize is the maximum allowed size for image uploads (10 MB).
	MaxUploadSize = 10 << 20
)

// Cache-Control header values.
const (
	CacheOneHour = "public, max-age=3600"
	CacheNoStore = "no-store"
)
