package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"ragstore/internal/adapter/store"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no store found at %s. Run 'ragstore ingest' first", dbPath)
	}

	db := store.NewVectorDatabase(nil)
	if err := db.LoadFromFile(dbPath); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	stats := db.Statistics()
	if statsJSON {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Store: %s\n", dbPath)
	fmt.Printf("  Documents:        %d\n", stats.TotalDocuments)
	fmt.Printf("  Metadata entries: %d\n", stats.MetadataEntries)
	fmt.Printf("  Vector dimension: %d\n", stats.VectorDimension)
	fmt.Printf("  Metrics:          %s\n", strings.Join(stats.DistanceMetrics, ", "))
	return nil
}
