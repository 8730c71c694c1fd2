package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// persistedStore is the flat-file format: one JSON object with vectors as
// plain numeric lists and metadata as arbitrary JSON objects. No
// versioning, no schema validation.
type persistedStore struct {
	Vectors  map[string][]float32      `json:"vectors"`
	Metadata map[string]map[string]any `json:"metadata"`
}

// SaveToFile writes the full store contents as a single JSON object.
func (db *VectorDatabase) SaveToFile(path string) error {
	db.mu.RLock()
	data, err := json.MarshalIndent(persistedStore{
		Vectors:  db.vectors,
		Metadata: db.metadata,
	}, "", "  ")
	db.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}

// LoadFromFile replaces the store contents with the file's vectors and
// metadata.
func (db *VectorDatabase) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}

	var stored persistedStore
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to decode store file %s: %w", path, err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.vectors = make(map[string][]float32, len(stored.Vectors))
	for key, vector := range stored.Vectors {
		db.vectors[key] = vector
	}
	db.metadata = make(map[string]map[string]any, len(stored.Metadata))
	for key, meta := range stored.Metadata {
		db.metadata[key] = meta
	}
	return nil
}
