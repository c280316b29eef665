// Package sqlite provides the SQLite-backed bookmark store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A bookmark holds the request and the continuation token of
// a result set, never page content.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.innergraph/data/bookmarks.db
package sqlite
