package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var docsDeleteYes bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage documents in the knowledge base",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE:  runDocsList,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

func init() {
	docsDeleteCmd.Flags().BoolVarP(&docsDeleteYes, "yes", "y", false, "skip the confirmation prompt")
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if sessionConfig == nil || sessionConfig.Controller == nil {
		return errors.New("session not configured")
	}

	docs, err := sessionConfig.Controller.RefreshDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents in the knowledge base.")
		return nil
	}

	for _, doc := range docs {
		line := fmt.Sprintf("%s  %s  (%d chunks", doc.ID, doc.Filename, doc.ChunkCount)
		if doc.PageCount > 0 {
			line += fmt.Sprintf(", %d pages", doc.PageCount)
		}
		line += ")"
		cmd.Println(line)
	}
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	if sessionConfig == nil || sessionConfig.Controller == nil {
		return errors.New("session not configured")
	}
	id := args[0]

	if !docsDeleteYes {
		cmd.Printf("Delete document %s? [y/N]: ", id)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := sessionConfig.Controller.DeleteDocument(cmd.Context(), id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	cmd.Printf("Deleted %s\n", id)
	return nil
}
