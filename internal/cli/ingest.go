package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"ragstore/config"
	"ragstore/internal/adapter/loader"
	"ragstore/internal/adapter/splitter"
	"ragstore/internal/port"
	"ragstore/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest documents into the store",
}

var ingestPDFCmd = &cobra.Command{
	Use:   "pdf <path>",
	Short: "Ingest a PDF file or a directory of PDFs",
	Long: `Extract text and metadata from PDF files, chunk them and add the
embedded chunks to the store.

Examples:
  ragstore ingest pdf report.pdf
  ragstore ingest pdf ./papers/`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestPDF,
}

var ingestYouTubeCmd = &cobra.Command{
	Use:   "youtube <url>",
	Short: "Ingest a YouTube video transcript (mocked)",
	Long: `Load the transcript for a YouTube URL, chunk it with timestamp
metadata and add the embedded chunks to the store. Transcript content is
a synthetic placeholder; no network call is made to YouTube.

Example:
  ragstore ingest youtube https://youtu.be/dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestYouTube,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.AddCommand(ingestPDFCmd, ingestYouTubeCmd)
}

func runIngestPDF(cmd *cobra.Command, args []string) error {
	sp, err := splitter.NewPDFSplitter(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap, cfg.Chunking.PreservePages)
	if err != nil {
		return err
	}
	return runIngest(loader.NewPDFLoader(args[0]), sp)
}

func runIngestYouTube(cmd *cobra.Command, args []string) error {
	sp, err := splitter.NewYouTubeSplitter(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap, cfg.Chunking.PreserveTimestamps)
	if err != nil {
		return err
	}
	return runIngest(loader.NewYouTubeLoader(args[0]), sp)
}

func runIngest(ld port.Loader, sp port.Splitter) error {
	embedder, closeEmbedder, err := newEmbedder()
	if err != nil {
		return err
	}
	defer func() { _ = closeEmbedder() }()

	db, err := openDatabase(embedder)
	if err != nil {
		return err
	}

	uc := usecase.NewIngestUseCase(ld, sp, db)

	var bar *progressbar.ProgressBar
	uc.SetProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Chunking"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		_ = bar.Set(done)
	})

	start := time.Now()
	result, err := uc.Run()
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if err := config.EnsureDir(dbPath); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := db.SaveToFile(dbPath); err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}

	fmt.Printf("Ingested %d documents (%d chunks) in %s\n",
		result.Documents, result.Chunks, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Store saved to %s (%d entries)\n", dbPath, db.Count())
	return nil
}
