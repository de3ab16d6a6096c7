// Package driven defines the interfaces that core services call OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them:
//
//   - Extractor: Converts a file into UTF-8 text
//   - EmbeddingService: Maps text to a fixed-length vector
//   - VectorStore: Upserts vectors and performs similarity search
//   - Ledger: Persists document fingerprints for deduplication
//   - LLMService: Turns a message history into an answer
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
