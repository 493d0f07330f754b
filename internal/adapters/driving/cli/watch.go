package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and upload new documents",
	Long: `Watches a directory and uploads every new or changed document of a
supported type (.pdf, .doc, .docx, .txt, .md). Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if sessionConfig == nil || sessionConfig.Tracker == nil {
		return errors.New("session not configured")
	}

	w := watcher.New(sessionConfig.Tracker, watcher.DefaultSettleDelay)
	cmd.Printf("Watching %s\n", args[0])
	if err := w.Run(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("watching %s: %w", args[0], err)
	}
	return nil
}
