// Package memory provides in-memory implementations of the storage ports.
//
// All three collections (assets, sessions, events) live in one Store
// behind a single mutex, so ids stay strictly increasing under
// concurrent callers. Reads return copies; callers can never mutate
// stored entities through a returned value.
//
// Data is lost when the process exits. The store backs tests and the
// "memory" storage backend.
package memory
