package driving

import "github.com/custodia-labs/modpatch/internal/core/domain"

// SettingsService manages patch settings.
type SettingsService interface {
	// Get returns the current settings, with defaults for unset keys.
	Get() (*domain.PatchSettings, error)

	// Set validates and stores a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string
}
