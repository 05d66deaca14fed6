// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewIngest is the text entry view.
	ViewIngest
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewMetrics shows the KPI panel and charts.
	ViewMetrics
	// ViewSettings lists and edits settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewIngest:
		return "ingest"
	case ViewSearch:
		return "search"
	case ViewMetrics:
		return "metrics"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IngestCompleted carries the stored asset back to the model.
type IngestCompleted struct {
	Asset *domain.Asset
	Err   error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Result *domain.SearchResult
	Err    error
}

// SeedRequested asks the app to insert the sample data.
type SeedRequested struct{}

// SeedCompleted signals the seed session finished.
type SeedCompleted struct {
	Session *domain.Session
	Err     error
}

// MetricsLoaded carries a freshly computed dashboard.
type MetricsLoaded struct {
	Dashboard *domain.Dashboard
	Err       error
}

// SettingsLoaded carries the current setting entries.
type SettingsLoaded struct {
	Entries []driving.SettingEntry
	Path    string
	Err     error
}

// SettingSaved signals a setting was persisted.
type SettingSaved struct {
	Key string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
