package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollowness-inside/rag/internal/core/services"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question over the indexed documents",
	Long: `Retrieves the chunks most similar to the question and asks the chat
model for an answer grounded in them.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := cmd.Context()

	indexer, closer, err := newIndexer(ctx)
	if err != nil {
		return err
	}
	defer closer()

	llm := newLLM()
	defer llm.Close()

	chain := services.NewChain(indexer, llm, cfg.Chain.TopK, cfg.Chain.MinSimilarity)

	answer, err := chain.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	cmd.Println(answer)
	return nil
}
