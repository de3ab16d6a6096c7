package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollowness-inside/rag/internal/logger"
)

var indexCmd = &cobra.Command{
	Use:   "index [directory]",
	Short: "Index the documents in a directory",
	Long: `Extracts, chunks, and embeds every supported file directly under the
given directory. Content that was indexed before is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx := cmd.Context()

	indexer, closer, err := newIndexer(ctx)
	if err != nil {
		return err
	}
	defer closer()

	logger.Section("Indexing " + dir)

	stats, err := indexer.IndexDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("index %s: %w", dir, err)
	}

	cmd.Printf("Indexed:    %d\n", stats.Indexed)
	cmd.Printf("Duplicates: %d\n", stats.Duplicates)
	cmd.Printf("Skipped:    %d\n", stats.Skipped)
	cmd.Printf("Failed:     %d\n", stats.Failed)

	if stats.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to index", stats.Failed)
	}
	return nil
}
