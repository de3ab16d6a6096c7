// Package domain defines the core entities of the RAG pipeline.
//
// This package is the innermost layer of the hexagonal architecture.
// It defines the fundamental types:
//
//   - Document: Extracted text with its source label
//   - RetrievedChunk: A similarity search result
//   - Fingerprint: Content hash used for deduplication and point identity
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
