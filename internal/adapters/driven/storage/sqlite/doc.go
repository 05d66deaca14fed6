// Package sqlite provides the SQLite implementation of the storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. One database connection pool backs both ports:
//
//   - AssetStore: the append-only text entries
//   - SessionStore: metrics sessions and their events
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files;
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.ripple/data/ripple.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. Writes are serialised by
// SQLite's write lock in WAL mode.
package sqlite
