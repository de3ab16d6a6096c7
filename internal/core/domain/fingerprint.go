package domain

import "hash/fnv"

// Fingerprint returns a stable 64-bit content hash of the given text.
//
// The same function serves two purposes: document-level deduplication
// (the ledger stores fingerprints of whole documents) and point identity
// in the vector store (a chunk's fingerprint is its point ID, so
// re-embedding identical chunk text overwrites rather than duplicates).
// Both uses must stay on the same algorithm to preserve that property.
func Fingerprint(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}
