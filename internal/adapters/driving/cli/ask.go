package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askDocs []string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about your documents",
	Long: `Sends a single question to the retrieval backend and prints the
answer with its sources. Use --doc to scope retrieval to specific
document ids; without it the whole knowledge base is consulted.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVar(&askDocs, "doc", nil, "document id to consult (repeatable)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if sessionConfig == nil || sessionConfig.Controller == nil {
		return errors.New("session not configured")
	}

	if len(askDocs) > 0 {
		// Selection only accepts known documents, so load the list first.
		if _, err := sessionConfig.Controller.RefreshDocuments(cmd.Context()); err != nil {
			return fmt.Errorf("loading documents: %w", err)
		}
		for _, id := range askDocs {
			sessionConfig.Controller.ToggleSelection(id)
		}
		if got := len(sessionConfig.Controller.Selection()); got != len(askDocs) {
			return fmt.Errorf("unknown document id in --doc")
		}
	}

	turn, err := sessionConfig.Controller.SendMessage(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	cmd.Println(turn.Content)
	if len(turn.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, s := range turn.Sources {
			cmd.Printf("  %s (chunk %d, %.2f)\n", s.Filename, s.ChunkIndex, s.Score)
		}
	}
	return nil
}
