// Package cli provides the command-line interface using cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// SessionConfig holds the services the commands run against.
type SessionConfig struct {
	Controller driving.SessionController
	Tracker    driving.JobTracker
}

// sessionConfig holds the current session configuration.
var sessionConfig *SessionConfig

// SetSessionConfig sets the services for all commands.
func SetSessionConfig(config *SessionConfig) {
	sessionConfig = config
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents from the terminal",
	Long: `Docchat uploads documents to a retrieval backend, tracks their
ingestion progress, and answers questions grounded in the documents
you select.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
