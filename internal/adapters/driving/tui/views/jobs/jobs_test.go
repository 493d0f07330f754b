package jobs

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/gateway/memory"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
)

func newTestView(t *testing.T, gw *memory.Gateway) (*View, *services.SessionController) {
	t.Helper()

	tracker := services.NewJobTracker(gw, services.TrackerConfig{})
	registry := services.NewDocumentRegistry(gw, services.RegistryConfig{})
	chat := services.NewChatSession(gw, services.ChatConfig{})
	controller := services.NewSessionController(tracker, registry, chat, services.ControllerConfig{})
	t.Cleanup(controller.Close)

	return NewView(styles.DefaultStyles(), keymap.Default(), controller), controller
}

func TestView_EmptyState(t *testing.T) {
	view, _ := newTestView(t, memory.NewGateway())

	assert.Contains(t, view.View(), "No jobs yet")
}

func TestView_RendersJobStates(t *testing.T) {
	view, _ := newTestView(t, memory.NewGateway())

	view.SetJobs([]domain.Job{
		{ID: "job-1", Filename: "a.pdf", Status: domain.JobProcessing, Progress: 40},
		{ID: "job-2", Filename: "b.pdf", Status: domain.JobCompleted, ChunkCount: 9},
		{ID: "job-3", Filename: "c.pdf", Status: domain.JobError, Error: "unsupported file type"},
	})

	out := view.View()
	assert.Contains(t, out, "a.pdf")
	assert.Contains(t, out, "b.pdf")
	assert.Contains(t, out, "9 chunks")
	assert.Contains(t, out, "unsupported file type")
}

func TestView_UploadSubmitsTrackedJob(t *testing.T) {
	gw := memory.NewGateway()
	view, controller := newTestView(t, gw)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	for _, r := range path {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	submitted, ok := cmd().(messages.UploadSubmitted)
	require.True(t, ok)
	require.NoError(t, submitted.Err)
	assert.Equal(t, "report.pdf", submitted.Job.Filename)
	assert.Equal(t, []string{"report.pdf"}, gw.Uploads())
	assert.Len(t, controller.Jobs(), 1)
}

func TestView_UploadMissingFileSurfacesError(t *testing.T) {
	view, _ := newTestView(t, memory.NewGateway())

	for _, r := range "/no/such/file.pdf" {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	submitted := cmd().(messages.UploadSubmitted)
	require.Error(t, submitted.Err)

	view.Update(submitted)
	assert.Contains(t, view.View(), "upload failed")
}

func TestView_EmptyPathDoesNothing(t *testing.T) {
	view, _ := newTestView(t, memory.NewGateway())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
