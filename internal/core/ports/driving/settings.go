package driving

import "github.com/custodia-labs/ripple-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults applied.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys in display order.
	Keys() []string

	// Entries returns every key with its effective and default value.
	Entries() ([]SettingEntry, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns where settings are persisted.
	Path() string
}

// SettingEntry is one setting rendered for display.
type SettingEntry struct {
	Key     string
	Value   string
	Default string
}
