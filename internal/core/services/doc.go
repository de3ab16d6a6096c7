// Package services contains the core pipeline logic: indexing documents
// into the vector store and answering questions over retrieved evidence.
package services
