package usecase

import (
	"fmt"

	"ragstore/internal/adapter/store"
	"ragstore/internal/domain"
	"ragstore/internal/port"
)

// ProgressFunc reports per-document ingest progress.
type ProgressFunc func(done, total int)

// IngestUseCase loads documents from a source, splits them into chunks
// and builds the vector database from the result.
type IngestUseCase struct {
	loader   port.Loader
	splitter port.Splitter
	db       *store.VectorDatabase
	progress ProgressFunc
}

func NewIngestUseCase(loader port.Loader, splitter port.Splitter, db *store.VectorDatabase) *IngestUseCase {
	return &IngestUseCase{
		loader:   loader,
		splitter: splitter,
		db:       db,
	}
}

// SetProgress installs a callback invoked after each document is split.
func (u *IngestUseCase) SetProgress(fn ProgressFunc) {
	u.progress = fn
}

// IngestResult summarizes one ingest run.
type IngestResult struct {
	Documents int
	Chunks    int
}

// Run loads, splits and embeds. Embedding happens in a single batch call
// after all documents are chunked.
func (u *IngestUseCase) Run() (IngestResult, error) {
	docs, err := u.loader.Load()
	if err != nil {
		return IngestResult{}, fmt.Errorf("failed to load documents: %w", err)
	}

	var chunks []domain.Chunk
	for i, doc := range docs {
		c, err := u.splitter.Split(doc.Text, doc.Metadata)
		if err != nil {
			return IngestResult{}, fmt.Errorf("failed to split document %d: %w", i, err)
		}
		chunks = append(chunks, c...)
		if u.progress != nil {
			u.progress(i+1, len(docs))
		}
	}

	if err := u.db.BuildFromChunks(chunks); err != nil {
		return IngestResult{}, err
	}
	return IngestResult{Documents: len(docs), Chunks: len(chunks)}, nil
}
