package store

import (
	"fmt"
	"sort"
	"sync"

	"ragstore/internal/domain"
	"ragstore/internal/port"
)

// VectorDatabase is an in-memory similarity-search store holding two
// co-indexed mappings, key -> vector and key -> metadata. Keys are opaque
// strings, typically the raw chunk text. Search is a brute-force linear
// scan; suitable for small corpora. Vector dimensions are assumed uniform
// across entries but never enforced.
type VectorDatabase struct {
	mu       sync.RWMutex
	vectors  map[string][]float32
	metadata map[string]map[string]any
	embedder port.Embedder
}

// NewVectorDatabase creates an empty database. The embedder may be nil if
// only vector-based search and persistence are needed.
func NewVectorDatabase(embedder port.Embedder) *VectorDatabase {
	return &VectorDatabase{
		vectors:  make(map[string][]float32),
		metadata: make(map[string]map[string]any),
		embedder: embedder,
	}
}

// Insert adds or overwrites the entry for key. Empty metadata is not
// stored; lookups default it to an empty map. There is no delete.
func (db *VectorDatabase) Insert(key string, vector []float32, metadata map[string]any) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.vectors[key] = vector
	if len(metadata) > 0 {
		db.metadata[key] = metadata
	}
}

// SearchOptions control metric selection, candidate filtering and output
// shape. The zero value searches by cosine similarity with no filter.
type SearchOptions struct {
	Metric     Metric // defaults to cosine
	Filter     Filter // optional metadata filter
	OmitScores bool   // leave Score zero in results
}

// SearchResult is one ranked entry.
type SearchResult struct {
	Key      string         `json:"key"`
	Score    float64        `json:"score,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Search scores every stored vector not excluded by the filter against the
// query and returns the top k. Similarity metrics sort descending, distance
// metrics ascending. k <= 0 or k beyond the store size returns all matches.
func (db *VectorDatabase) Search(query []float32, k int, opts SearchOptions) ([]SearchResult, error) {
	metric := opts.Metric
	if metric == "" {
		metric = MetricCosine
	}
	score, higherIsBetter, err := metricFor(metric)
	if err != nil {
		return nil, err
	}

	db.mu.RLock()
	results := make([]SearchResult, 0, len(db.vectors))
	for key, vector := range db.vectors {
		meta := db.metadata[key]
		if opts.Filter != nil && !opts.Filter.Matches(meta) {
			continue
		}
		results = append(results, SearchResult{
			Key:      key,
			Score:    score(query, vector),
			Metadata: meta,
		})
	}
	db.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		if higherIsBetter {
			return results[i].Score > results[j].Score
		}
		return results[i].Score < results[j].Score
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}

	if opts.OmitScores {
		for i := range results {
			results[i].Score = 0
		}
	}
	return results, nil
}

// SearchByText embeds the query text and delegates to Search. This is the
// one call that blocks on the external embedding provider.
func (db *VectorDatabase) SearchByText(query string, k int, opts SearchOptions) ([]SearchResult, error) {
	if db.embedder == nil {
		return nil, fmt.Errorf("text search not available: no embedder configured")
	}

	vectors, err := db.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}
	return db.Search(vectors[0], k, opts)
}

// RetrieveFromKey returns the stored vector and metadata for key. The
// metadata defaults to an empty map; a nil vector means the key is absent.
func (db *VectorDatabase) RetrieveFromKey(key string) ([]float32, map[string]any) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	meta := db.metadata[key]
	if meta == nil {
		meta = map[string]any{}
	}
	return db.vectors[key], meta
}

// AllMetadata returns a shallow copy of the metadata mapping.
func (db *VectorDatabase) AllMetadata() map[string]map[string]any {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make(map[string]map[string]any, len(db.metadata))
	for key, meta := range db.metadata {
		out[key] = meta
	}
	return out
}

// UpdateMetadata merges new entries into the metadata for key, overwriting
// existing fields and preserving the rest. Fails if the key is absent.
func (db *VectorDatabase) UpdateMetadata(key string, newMetadata map[string]any) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.vectors[key]; !ok {
		return fmt.Errorf("key not found: %q", key)
	}
	meta := db.metadata[key]
	if meta == nil {
		meta = make(map[string]any, len(newMetadata))
		db.metadata[key] = meta
	}
	for k, v := range newMetadata {
		meta[k] = v
	}
	return nil
}

// Count returns the number of stored vectors.
func (db *VectorDatabase) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.vectors)
}

// Statistics reports store contents. VectorDimension is taken from an
// arbitrary entry and is 0 for an empty store.
func (db *VectorDatabase) Statistics() domain.Statistics {
	db.mu.RLock()
	defer db.mu.RUnlock()

	dimension := 0
	for _, vector := range db.vectors {
		dimension = len(vector)
		break
	}
	return domain.Statistics{
		TotalDocuments:  len(db.vectors),
		MetadataEntries: len(db.metadata),
		VectorDimension: dimension,
		DistanceMetrics: SupportedMetrics(),
	}
}

// BuildFromTexts embeds all texts in one batch call to the provider and
// inserts each (text, vector, metadata) triple, keyed by the text itself.
// metadataList may be nil; otherwise it must match texts in length.
func (db *VectorDatabase) BuildFromTexts(texts []string, metadataList []map[string]any) error {
	if db.embedder == nil {
		return fmt.Errorf("cannot build: no embedder configured")
	}
	if metadataList != nil && len(metadataList) != len(texts) {
		return fmt.Errorf("metadata list length %d does not match %d texts", len(metadataList), len(texts))
	}

	vectors, err := db.embedder.Embed(texts)
	if err != nil {
		return fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	for i, text := range texts {
		var meta map[string]any
		if metadataList != nil {
			meta = metadataList[i]
		}
		db.Insert(text, vectors[i], meta)
	}
	return nil
}

// BuildFromChunks inserts pre-chunked (text, metadata) pairs. Each chunk's
// metadata is shallow-copied so splitter reuse cannot alias stored entries.
func (db *VectorDatabase) BuildFromChunks(chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	metadataList := make([]map[string]any, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
		meta := make(map[string]any, len(chunk.Metadata))
		for k, v := range chunk.Metadata {
			meta[k] = v
		}
		metadataList[i] = meta
	}
	return db.BuildFromTexts(texts, metadataList)
}
