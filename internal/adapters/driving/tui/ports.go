package tui

import (
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library stores and searches assets.
	Library driving.LibraryService

	// Metrics derives the dashboard.
	Metrics driving.MetricsService

	// Settings manages application settings. Optional; the settings view
	// shows an error when it is missing.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	library driving.LibraryService,
	metrics driving.MetricsService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Library:  library,
		Metrics:  metrics,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrNilPorts
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Metrics == nil {
		return ErrMissingMetricsService
	}
	return nil
}

// Options holds display defaults for the views.
type Options struct {
	Stress  domain.StressReading
	Display domain.DisplaySettings
}

// OptionsFromSettings derives view options from application settings.
func OptionsFromSettings(settings *domain.AppSettings) Options {
	return Options{
		Stress:  settings.Stress.Reading(),
		Display: settings.Display,
	}
}
