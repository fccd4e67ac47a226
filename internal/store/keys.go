package store

// Slot keys. The names match what the storefront has always written so
// existing data keeps loading.
const (
	keyProducts = "helojet_products_v4"
	keyAuth     = "helojet_auth"
	keySettings = "helojet_settings"
	keyLeads    = "leads"
)

// authFlagValue is the stored form of a signed-in session.
const authFlagValue = "true"
