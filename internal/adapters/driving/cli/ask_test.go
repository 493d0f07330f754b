package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestSession(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	gw := setupTestSession(t)
	gw.ChatFn = func(_ context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
		return &domain.ChatResponse{
			Response: "The report covers Q3 revenue.",
			Sources: []domain.SourceRef{
				{Filename: "report.pdf", ChunkIndex: 2, Score: 0.91},
			},
			ContextUsed: len(req.ContextFileIDs) > 0,
		}, nil
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what is in the report?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "The report covers Q3 revenue.")
	assert.Contains(t, buf.String(), "report.pdf (chunk 2, 0.91)")
}

func TestAskCmd_DocFlagScopesRetrieval(t *testing.T) {
	gw := setupTestSession(t)
	gw.SeedDocuments(
		domain.Document{ID: "d1", Filename: "report.pdf"},
		domain.Document{ID: "d2", Filename: "notes.md"},
	)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "summarise", "--doc", "d2"})
	defer func() {
		rootCmd.SetArgs(nil)
		askDocs = nil
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)

	reqs := gw.ChatRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, []string{"d2"}, reqs[0].ContextFileIDs)
}

func TestAskCmd_UnknownDocID(t *testing.T) {
	setupTestSession(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "summarise", "--doc", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
		askDocs = nil
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown document id")
}
