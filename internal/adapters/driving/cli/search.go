package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollowness-inside/rag/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed chunks without asking the chat model",
	Long: `Embeds the query and prints the most similar stored chunks with their
similarity scores. Useful for inspecting what evidence a question would
retrieve.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := cmd.Context()

	indexer, closer, err := newIndexer(ctx)
	if err != nil {
		return err
	}
	defer closer()

	chunks, err := indexer.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, chunks)
	}
	return outputSearchText(cmd, chunks)
}

func outputSearchJSON(cmd *cobra.Command, chunks []domain.RetrievedChunk) error {
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, chunks []domain.RetrievedChunk) error {
	if len(chunks) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, chunk := range chunks {
		cmd.Printf("[%d] %s (%.3f)\n", i+1, chunk.Source, chunk.Similarity)
		cmd.Printf("    %s\n", chunk.Content)
		cmd.Println()
	}
	return nil
}
