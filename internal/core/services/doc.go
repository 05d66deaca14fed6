// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// LibraryService wraps every user operation in a tracked session,
// TrackerService exposes sessions and events directly, MetricsService
// derives KPIs and chart series, and ExportService produces the JSON
// snapshot and the standalone report.
package services
