// Package services implements the driving port interfaces.
// Services orchestrate the graph, cursor and format layers over the driven
// ports (transport, bookmark store, config store, media).
package services
