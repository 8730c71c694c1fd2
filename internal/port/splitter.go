package port

import "ragstore/internal/domain"

// Splitter breaks a document's text into chunks, attaching the document
// metadata to every chunk it emits.
type Splitter interface {
	Split(text string, metadata map[string]any) ([]domain.Chunk, error)
}
