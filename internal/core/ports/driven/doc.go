// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Transport: performs remote calls against the service endpoints
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BookmarkStore: saved cursor positions. Without it, bookmarks are disabled.
//   - URLResolver: format URL resolution. Without it, only plain URLs are used.
//   - MediaStreamer: media downloads. Without it, Download fails.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
