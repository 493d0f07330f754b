package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/gateway/memory"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
)

// newTestPorts builds a real controller over the in-memory gateway so
// the app exercises the same wiring main uses.
func newTestPorts(t *testing.T, docs ...domain.Document) *Ports {
	t.Helper()

	gw := memory.NewGateway()
	gw.SeedDocuments(docs...)

	tracker := services.NewJobTracker(gw, services.TrackerConfig{})
	registry := services.NewDocumentRegistry(gw, services.RegistryConfig{})
	chat := services.NewChatSession(gw, services.ChatConfig{})
	controller := services.NewSessionController(tracker, registry, chat, services.ControllerConfig{})
	t.Cleanup(controller.Close)

	// Load the seeded documents so views have something to render.
	_, err := controller.RefreshDocuments(context.Background())
	require.NoError(t, err)

	return &Ports{Controller: controller}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(t))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.TabJobs, app.activeTab)
}

func TestNewApp_MissingController(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingController)
	assert.Nil(t, app)
}

func TestApp_TabCycling(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, messages.TabDocuments, app.activeTab)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, messages.TabChat, app.activeTab)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, messages.TabJobs, app.activeTab)

	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, messages.TabChat, app.activeTab)
}

func TestApp_QuitReturnsQuitCmd(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_TickSyncsDocumentsIntoView(t *testing.T) {
	app, err := NewApp(newTestPorts(t, domain.Document{
		ID: "d1", Filename: "report.pdf", ChunkCount: 12, Status: "indexed",
	}))
	require.NoError(t, err)

	_, cmd := app.Update(messages.Tick{})
	require.NotNil(t, cmd) // next tick is scheduled

	app.Update(tea.KeyMsg{Type: tea.KeyTab}) // documents tab
	assert.Contains(t, app.View(), "report.pdf")
}

func TestApp_ToggleSelectionFromDocumentsTab(t *testing.T) {
	ports := newTestPorts(t, domain.Document{ID: "d1", Filename: "report.pdf"})
	app, err := NewApp(ports)
	require.NoError(t, err)

	app.Update(messages.Tick{})
	app.Update(tea.KeyMsg{Type: tea.KeyTab}) // documents tab
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})

	assert.Equal(t, []string{"d1"}, ports.Controller.Selection())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	assert.Empty(t, ports.Controller.Selection())
}

func TestApp_StatusBarCountsState(t *testing.T) {
	ports := newTestPorts(t,
		domain.Document{ID: "d1", Filename: "a.pdf"},
		domain.Document{ID: "d2", Filename: "b.pdf"},
	)
	ports.Controller.ToggleSelection("d1")

	app, err := NewApp(ports)
	require.NoError(t, err)

	bar := app.statusBar()
	assert.Contains(t, bar, "2 documents")
	assert.Contains(t, bar, "1 selected")
}

func TestApp_KeystrokesOnlyReachActiveTab(t *testing.T) {
	ports := newTestPorts(t, domain.Document{ID: "d1", Filename: "report.pdf"})
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.Update(messages.Tick{})

	// Typing in the chat tab must not toggle document selection.
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // chat tab
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})

	assert.Empty(t, ports.Controller.Selection())
}

func TestApp_ViewShowsTabBar(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	view := app.View()
	for _, label := range []string{"jobs", "documents", "chat"} {
		assert.True(t, strings.Contains(view, label), "tab bar should show %q", label)
	}
}
