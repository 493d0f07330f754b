package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

var uploadWait bool

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload documents for ingestion",
	Long: `Uploads one or more files to the retrieval backend and tracks the
resulting ingestion jobs. With --wait the command blocks until every
job reaches a terminal state.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", true, "wait for ingestion to finish")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if sessionConfig == nil || sessionConfig.Controller == nil {
		return errors.New("session not configured")
	}

	jobIDs := make([]string, 0, len(args))
	for _, path := range args {
		if !watcher.Accepts(path) {
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}

		job, err := sessionConfig.Controller.Upload(cmd.Context(), filepath.Base(path), f)
		f.Close()
		if err != nil {
			return fmt.Errorf("uploading %s: %w", path, err)
		}

		cmd.Printf("Uploaded %s (job %s)\n", job.Filename, job.ID)
		jobIDs = append(jobIDs, job.ID)
	}

	if !uploadWait {
		return nil
	}
	return waitForJobs(cmd, jobIDs)
}

// waitForJobs blocks until every job is terminal, printing progress on
// a TTY and staying quiet when output is piped.
func waitForJobs(cmd *cobra.Command, jobIDs []string) error {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	done := make(map[string]bool, len(jobIDs))
	var failed int

	for len(done) < len(jobIDs) {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-ticker.C:
		}

		for _, id := range jobIDs {
			if done[id] {
				continue
			}
			job, ok := sessionConfig.Tracker.Job(id)
			if !ok {
				return fmt.Errorf("job %s is no longer tracked", id)
			}

			switch {
			case job.Status == domain.JobCompleted:
				done[id] = true
				clearProgressLine(cmd, interactive)
				cmd.Printf("Ingested %s: %d chunks (document %s)\n", job.Filename, job.ChunkCount, job.DocumentID)
			case job.Status == domain.JobError:
				done[id] = true
				failed++
				clearProgressLine(cmd, interactive)
				cmd.Printf("Failed %s: %s\n", job.Filename, job.Error)
			case interactive:
				cmd.Printf("\r%s: %d%%   ", job.Filename, job.Progress)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(jobIDs))
	}
	return nil
}

func clearProgressLine(cmd *cobra.Command, interactive bool) {
	if interactive {
		cmd.Print("\r\033[K")
	}
}
