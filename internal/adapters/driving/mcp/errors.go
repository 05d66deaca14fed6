// Package mcp provides an MCP (Model Context Protocol) server adapter for Ripple.
// It lets AI assistants store notes, search them and read the tracked metrics.
package mcp

import "errors"

// Errors returned when required ports are missing.
var (
	ErrNilPorts        = errors.New("mcp: ports are required")
	ErrMissingLibrary  = errors.New("mcp: library service is required")
	ErrMissingMetrics  = errors.New("mcp: metrics service is required")
	ErrMissingExporter = errors.New("mcp: export service is required")
	ErrUnknownFormat   = errors.New("mcp: export format must be json or html")
)
