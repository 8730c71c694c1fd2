package domain

// Document is the full text extracted from one source plus its metadata.
type Document struct {
	Text     string
	Metadata map[string]any
}

// Chunk is a bounded fragment of a document produced by a splitter.
// Chunks are ephemeral; they exist only to be inserted into a store.
type Chunk struct {
	Text     string
	Metadata map[string]any
}

// TranscriptSegment is one timed piece of a video transcript.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Statistics summarizes the contents of a vector database.
type Statistics struct {
	TotalDocuments  int      `json:"total_documents"`
	MetadataEntries int      `json:"total_metadata_entries"`
	VectorDimension int      `json:"vector_dimension"`
	DistanceMetrics []string `json:"available_distance_metrics"`
}
