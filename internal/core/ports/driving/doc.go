// Package driving defines the interfaces external actors (CLI, MCP server)
// use to drive the core. These are the "driving" ports in hexagonal
// architecture terminology.
//
// Implementations live in internal/core/services.
package driving
