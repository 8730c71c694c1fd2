package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunking.ChunkSize != 1000 {
		t.Errorf("expected ChunkSize=1000, got %d", cfg.Chunking.ChunkSize)
	}
	if cfg.Chunking.ChunkOverlap != 200 {
		t.Errorf("expected ChunkOverlap=200, got %d", cfg.Chunking.ChunkOverlap)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Search.TopK)
	}
	if cfg.Search.Metric != "cosine" {
		t.Errorf("expected Metric=cosine, got %s", cfg.Search.Metric)
	}
	if cfg.Embedding.BatchSize != 100 {
		t.Errorf("expected BatchSize=100, got %d", cfg.Embedding.BatchSize)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ragstore.yaml")

	content := `
embedding:
  provider: mock
  dimension: 64
chunking:
  chunk_size: 500
  chunk_overlap: 50
search:
  metric: euclidean
store:
  path: custom.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedding.Provider != "mock" {
		t.Errorf("expected provider=mock, got %s", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimension != 64 {
		t.Errorf("expected dimension=64, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Chunking.ChunkSize != 500 {
		t.Errorf("expected chunk_size=500, got %d", cfg.Chunking.ChunkSize)
	}
	if cfg.Search.Metric != "euclidean" {
		t.Errorf("expected metric=euclidean, got %s", cfg.Search.Metric)
	}
	if cfg.Store.Path != "custom.json" {
		t.Errorf("expected path=custom.json, got %s", cfg.Store.Path)
	}

	// Unset fields keep their defaults.
	if cfg.Search.TopK != 5 {
		t.Errorf("expected default TopK=5, got %d", cfg.Search.TopK)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("chunking: ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ragstore.yaml")

	cfg := DefaultConfig()
	cfg.Search.TopK = 11
	cfg.Embedding.Model = "text-embedding-3-large"

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Search.TopK != 11 {
		t.Errorf("expected TopK=11, got %d", loaded.Search.TopK)
	}
	if loaded.Embedding.Model != "text-embedding-3-large" {
		t.Errorf("expected model round trip, got %s", loaded.Embedding.Model)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.TopK != 5 {
		t.Error("expected defaults for directory without config")
	}

	content := "search:\n  top_k: 3\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "ragstore.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.TopK != 3 {
		t.Errorf("expected TopK=3 from ragstore.yaml, got %d", cfg.Search.TopK)
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "cache.db")

	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}
