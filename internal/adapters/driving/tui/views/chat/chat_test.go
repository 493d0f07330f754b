package chat

import (
	"context"
	"errors"
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

	_, err := controller.RefreshDocuments(context.Background())
	require.NoError(t, err)

	return NewView(styles.DefaultStyles(), keymap.Default(), controller), controller
}

func typeText(view *View, text string) {
	for _, r := range text {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestView_EmptyState(t *testing.T) {
	view, _ := newTestView(t, memory.NewGateway())

	assert.Contains(t, view.View(), "No messages yet")
}

func TestView_SendAppendsExchange(t *testing.T) {
	view, controller := newTestView(t, memory.NewGateway())

	typeText(view, "what is in the report?")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, view.sending)

	msg := runBatch(t, cmd)
	replied, ok := msg.(messages.ChatReplied)
	require.True(t, ok)
	require.NoError(t, replied.Err)

	view.Update(replied)
	assert.False(t, view.sending)

	turns := controller.Conversation()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Contains(t, view.View(), turns[1].Content)
}

// runBatch executes a possibly batched command and returns the first
// message the view itself defines, skipping internal spinner ticks.
func runBatch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		switch m := c().(type) {
		case messages.ChatReplied, messages.TranscriptSaved:
			return m
		}
	}
	t.Fatal("batch produced no relevant message")
	return nil
}

func TestView_EmptyInputDoesNotSend(t *testing.T) {
	view, controller := newTestView(t, memory.NewGateway())

	typeText(view, "   ")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, view.sending)
	assert.Empty(t, controller.Conversation())
}

func TestView_SelectionShownInContextLine(t *testing.T) {
	gw := memory.NewGateway()
	gw.SeedDocuments(
		domain.Document{ID: "d1", Filename: "report.pdf"},
		domain.Document{ID: "d2", Filename: "notes.md"},
	)
	view, controller := newTestView(t, gw)

	assert.Contains(t, view.View(), "Consulting all documents")

	controller.ToggleSelection("d1")
	out := view.View()
	assert.Contains(t, out, "Consulting: report.pdf")
	assert.NotContains(t, out, "notes.md")
}

func TestView_FailureFallbackIsRendered(t *testing.T) {
	gw := memory.NewGateway()
	gw.FailChat(errors.New("retrieval backend unavailable"))
	view, controller := newTestView(t, gw)

	typeText(view, "hello")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	replied := runBatch(t, cmd).(messages.ChatReplied)
	require.Error(t, replied.Err)
	view.Update(replied)

	turns := controller.Conversation()
	require.Len(t, turns, 2)
	assert.Equal(t, services.FallbackReply, turns[1].Content)
	assert.Contains(t, view.View(), services.FallbackReply)
}

func TestView_SaveTranscriptWithNoTurnsFails(t *testing.T) {
	view, _ := newTestView(t, memory.NewGateway())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	saved := cmd().(messages.TranscriptSaved)
	assert.Error(t, saved.Err)
}
