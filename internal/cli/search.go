package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"ragstore/internal/adapter/store"
	"ragstore/internal/usecase"
)

var (
	searchQuery    string
	searchTopK     int
	searchMetric   string
	searchFilter   string
	searchJSON     bool
	searchNoScores bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the store by text query",
	Long: `Embed the query and return the closest stored chunks.

Examples:
  ragstore search -q "how do startups find product market fit"
  ragstore search -q "transformers" -k 3 --metric euclidean
  ragstore search -q "advice" --filter '{"source_type": "youtube"}'`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "query text (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().StringVar(&searchMetric, "metric", "", "distance metric: "+strings.Join(store.SupportedMetrics(), ", "))
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "metadata filter as JSON")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	searchCmd.Flags().BoolVar(&searchNoScores, "no-scores", false, "omit similarity scores from output")
	_ = searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no store found at %s. Run 'ragstore ingest' first", dbPath)
	}

	embedder, closeEmbedder, err := newEmbedder()
	if err != nil {
		return err
	}
	defer func() { _ = closeEmbedder() }()

	db, err := openDatabase(embedder)
	if err != nil {
		return err
	}

	topK := searchTopK
	if topK <= 0 {
		topK = cfg.Search.TopK
	}
	metric := searchMetric
	if metric == "" {
		metric = cfg.Search.Metric
	}

	var filter map[string]any
	if searchFilter != "" {
		if err := json.Unmarshal([]byte(searchFilter), &filter); err != nil {
			return fmt.Errorf("invalid filter JSON: %w", err)
		}
	}

	uc := usecase.NewSearchUseCase(db)
	results, err := uc.Run(usecase.SearchParams{
		Query:      searchQuery,
		TopK:       topK,
		Metric:     store.Metric(metric),
		Filter:     filter,
		OmitScores: searchNoScores,
	})
	if err != nil {
		return err
	}

	if searchJSON {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, r := range results {
		if searchNoScores {
			fmt.Printf("%d. %s\n", i+1, summarize(r.Key))
		} else {
			fmt.Printf("%d. [%.4f] %s\n", i+1, r.Score, summarize(r.Key))
		}
		printMetadata(r.Metadata)
	}
	return nil
}

// summarize flattens and truncates chunk text for terminal display.
func summarize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	const max = 120
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}

func printMetadata(md map[string]any) {
	for _, key := range []string{"source", "primary_page", "segment_range", "chunk_id"} {
		if v, ok := md[key]; ok {
			fmt.Printf("   %s: %v\n", key, v)
		}
	}
}
