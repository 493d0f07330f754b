// Package domain defines the core business entities for docchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A fully ingested, queryable artifact on the remote service
//   - Job: A tracked asynchronous ingestion run for one uploaded file
//   - Turn: One message (user or assistant) in the chat session
//   - ChatRequest / ChatResponse: The gateway chat exchange
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
