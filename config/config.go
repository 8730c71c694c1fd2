package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ragstore tool.
type Config struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Search    SearchConfig    `yaml:"search"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai" or "mock"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`    // OpenAI-compatible endpoint
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
	CachePath string `yaml:"cache_path"` // bbolt embedding cache; empty disables
}

// ChunkingConfig holds text splitter configuration.
type ChunkingConfig struct {
	ChunkSize          int  `yaml:"chunk_size"`
	ChunkOverlap       int  `yaml:"chunk_overlap"`
	PreservePages      bool `yaml:"preserve_pages"`
	PreserveTimestamps bool `yaml:"preserve_timestamps"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	TopK   int    `yaml:"top_k"`
	Metric string `yaml:"metric"`
}

// StoreConfig holds store persistence configuration.
type StoreConfig struct {
	Path string `yaml:"path"` // flat JSON store file
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
			CachePath: ".ragstore/embeddings.db",
		},
		Chunking: ChunkingConfig{
			ChunkSize:          1000,
			ChunkOverlap:       200,
			PreservePages:      true,
			PreserveTimestamps: true,
		},
		Search: SearchConfig{
			TopK:   5,
			Metric: "cosine",
		},
		Store: StoreConfig{
			Path: "store.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults if
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ragstore.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ragstore.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ragstore", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates the parent directory of path if needed, so cache and
// store files can be written on first run.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
