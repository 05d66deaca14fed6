// Package domain defines the core business entities for Ripple.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Asset: A stored text entry
//   - Session: One tracked user operation with before/after stress readings
//   - Event: A timed sub-step logged within a session
//   - Snapshot: A full export of assets, sessions and events
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
