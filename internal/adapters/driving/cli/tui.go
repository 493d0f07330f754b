package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Docchat.

Three tabs cover the session: uploads and their ingestion progress,
the document list with selection, and the conversation.

Controls:
  tab/shift+tab - Switch tabs
  ↑/↓           - Navigate lists
  space         - Toggle document selection
  ctrl+s        - Save the chat transcript
  ctrl+c        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Recover so a rendering panic still leaves a stack trace behind.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if sessionConfig == nil || sessionConfig.Controller == nil {
		return errors.New("session not configured")
	}

	app, err := tui.NewApp(&tui.Ports{Controller: sessionConfig.Controller})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// The TUI is long-running, so the session's background refresh loop
	// runs alongside it and is torn down when the program exits.
	runCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := sessionConfig.Controller.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "session loop stopped: %v\n", err)
		}
	}()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
