package mcp

import (
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Library stores and searches assets.
	Library driving.LibraryService

	// Metrics derives the dashboard.
	Metrics driving.MetricsService

	// Export renders the snapshot and report.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrNilPorts
	}
	if p.Library == nil {
		return ErrMissingLibrary
	}
	if p.Metrics == nil {
		return ErrMissingMetrics
	}
	if p.Export == nil {
		return ErrMissingExporter
	}
	return nil
}

// Options holds defaults applied when a tool call omits a value.
type Options struct {
	// Stress is used when a call gives no stress readings.
	Stress domain.StressReading

	// ResultLimit caps the number of search results returned.
	ResultLimit int
}

// OptionsFromSettings derives server options from application settings.
func OptionsFromSettings(settings *domain.AppSettings) Options {
	return Options{
		Stress:      settings.Stress.Reading(),
		ResultLimit: settings.Display.ResultLimit,
	}
}
