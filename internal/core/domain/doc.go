// Package domain defines the core entities for innergraph.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - FetchRequest: One remote call (endpoint, params, continuation)
//   - Format: One encoded rendition of a playable resource
//   - FormatOptions: Caller constraints for format selection
//   - StreamingData, VideoDetails, PlayabilityStatus: Player payload
//   - Bookmark: A saved continuation token
//   - Settings: Application configuration
//
// It also owns the error taxonomy shared by every layer: malformed
// documents, variant mismatches, end of sequence, no matching format,
// and the split between retryable transport failures and service errors.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
