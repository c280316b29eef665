package driving

import "github.com/custodia-labs/innergraph/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings, defaults filled in.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Set validates and persists a single dotted key such as "transport.burst".
	Set(key, value string) error

	// GetDefaults returns the default settings.
	GetDefaults() domain.Settings
}
