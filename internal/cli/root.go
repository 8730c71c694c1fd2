package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"ragstore/config"
	"ragstore/internal/adapter/cache"
	"ragstore/internal/adapter/embedding"
	"ragstore/internal/adapter/store"
	"ragstore/internal/port"
)

var (
	cfgFile string
	dbPath  string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ragstore",
	Short: "In-memory vector store with document loaders for RAG pipelines",
	Long: `ragstore ingests PDF files and YouTube transcripts, chunks them with
metadata, embeds the chunks and serves filtered similarity search over
the result. The store persists to a flat JSON file.

Example usage:
  ragstore ingest pdf docs/           # Ingest a directory of PDFs
  ragstore ingest youtube <url>       # Ingest a (mock) video transcript
  ragstore search -q "startup advice" -k 3`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(".")
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dbPath == "" {
			dbPath = cfg.Store.Path
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ragstore.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "store file (default from config)")
}

// newEmbedder builds the configured embedding provider, optionally wrapped
// in the bbolt cache. The returned closer releases the cache handle.
func newEmbedder() (port.Embedder, func() error, error) {
	var base port.Embedder
	switch cfg.Embedding.Provider {
	case "mock":
		base = embedding.NewMockEmbedder(cfg.Embedding.Dimension)
	default:
		e, err := embedding.NewHTTPEmbedder(embedding.Options{
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			APIKeyEnv: cfg.Embedding.APIKeyEnv,
			Dimension: cfg.Embedding.Dimension,
			BatchSize: cfg.Embedding.BatchSize,
		})
		if err != nil {
			return nil, nil, err
		}
		base = e
	}

	if cfg.Embedding.CachePath == "" {
		return base, func() error { return nil }, nil
	}

	if err := config.EnsureDir(cfg.Embedding.CachePath); err != nil {
		return nil, nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	cached, err := cache.NewCachedEmbedder(cfg.Embedding.CachePath, base)
	if err != nil {
		return nil, nil, err
	}
	return cached, cached.Close, nil
}

// openDatabase creates a database and loads the store file if present.
func openDatabase(embedder port.Embedder) (*store.VectorDatabase, error) {
	db := store.NewVectorDatabase(embedder)
	if _, err := os.Stat(dbPath); err == nil {
		if err := db.LoadFromFile(dbPath); err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
	}
	return db, nil
}
