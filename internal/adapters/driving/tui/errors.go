// Package tui provides an interactive terminal user interface for ripple.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import "errors"

// ErrNilPorts is returned when no ports are provided.
var ErrNilPorts = errors.New("tui: ports are required")

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("tui: library service is required")

// ErrMissingMetricsService is returned when the metrics service is not provided.
var ErrMissingMetricsService = errors.New("tui: metrics service is required")
