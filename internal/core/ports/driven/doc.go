// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AssetStore: Append-only text entry persistence with substring search
//   - SessionStore: Session and event persistence
//   - ConfigStore: Application configuration
//   - ReportRenderer: Standalone HTML metrics report
//
// Both stores are implemented by the sqlite and memory adapters. Ids are
// assigned by the store and must be strictly increasing and never reused,
// so every implementation serialises its writes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
