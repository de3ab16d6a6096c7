package domain

// Document represents the extracted text of a single file.
// It is the unit of deduplication: a whole document is either
// indexed or skipped based on its content fingerprint.
type Document struct {
	// ID is the unique identifier assigned at extraction time.
	ID string

	// Path is the filesystem location the text was extracted from.
	Path string

	// Source is the human-readable label stored alongside every
	// chunk of this document (typically the file name).
	Source string

	// Content is the full extracted UTF-8 text before chunking.
	Content string
}

// RetrievedChunk is a single similarity search result.
// It is created transiently per query and never persisted.
type RetrievedChunk struct {
	// Content is the chunk text stored in the vector store payload.
	Content string

	// Source is the label of the document the chunk came from.
	Source string

	// Similarity is the store-reported relevance score.
	// Results are ranked by this value, descending.
	Similarity float64
}
