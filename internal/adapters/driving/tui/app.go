package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/views/jobs"
)

// tickInterval is how often the app repaints. Job polling and document
// refreshes mutate controller state in the background, so views re-read
// controller snapshots on every tick.
const tickInterval = 500 * time.Millisecond

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the key bindings.
	keys *keymap.KeyMap

	// jobsView is the upload and job monitor tab.
	jobsView *jobs.View

	// documentsView is the document selection tab.
	documentsView *documents.View

	// chatView is the conversation tab.
	chatView *chat.View

	// activeTab tracks which tab is focused.
	activeTab messages.TabType

	// width and height are terminal dimensions.
	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	keys := keymap.Default()

	return &App{
		ports:         ports,
		styles:        s,
		keys:          keys,
		jobsView:      jobs.NewView(s, keys, ports.Controller),
		documentsView: documents.NewView(s, keys, ports.Controller),
		chatView:      chat.NewView(s, keys, ports.Controller),
		activeTab:     messages.TabJobs,
	}, nil
}

// Init starts the repaint ticker.
func (a *App) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return messages.Tick{}
	})
}

// Update routes messages to the active tab and keeps every view fed
// with the latest controller snapshots.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.jobsView, cmd = a.jobsView.Update(msg)
		cmds = append(cmds, cmd)
		a.chatView, cmd = a.chatView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case messages.Tick:
		a.syncViews()
		return a, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextTab):
			a.activeTab = (a.activeTab + 1) % 3
			return a, nil
		case key.Matches(msg, a.keys.PrevTab):
			a.activeTab = (a.activeTab + 2) % 3
			return a, nil
		}
		return a.updateActive(msg)
	}

	return a.updateActive(msg)
}

// syncViews pushes the latest controller snapshots into every tab.
func (a *App) syncViews() {
	a.jobsView.SetJobs(a.ports.Controller.Jobs())
	a.documentsView.SetDocuments(a.ports.Controller.Documents())
	a.chatView.SetTurns(a.ports.Controller.Conversation())
}

// updateActive forwards a message to the focused tab only, so a
// keystroke in the chat input never moves the document cursor.
func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeTab {
	case messages.TabJobs:
		a.jobsView, cmd = a.jobsView.Update(msg)
	case messages.TabDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.TabChat:
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return a, cmd
}

// View renders the tab bar, the active tab and the status bar.
func (a *App) View() string {
	var body string
	switch a.activeTab {
	case messages.TabJobs:
		body = a.jobsView.View()
	case messages.TabDocuments:
		body = a.documentsView.View()
	case messages.TabChat:
		body = a.chatView.View()
	}

	return a.tabBar() + "\n\n" + body + "\n" + a.statusBar()
}

func (a *App) tabBar() string {
	tabs := []messages.TabType{messages.TabJobs, messages.TabDocuments, messages.TabChat}
	out := ""
	for _, tab := range tabs {
		label := " " + tab.String() + " "
		if tab == a.activeTab {
			out += a.styles.TabActive.Render(label)
		} else {
			out += a.styles.Tab.Render(label)
		}
	}
	return out
}

func (a *App) statusBar() string {
	pending := 0
	for _, job := range a.ports.Controller.Jobs() {
		if !job.Status.Terminal() {
			pending++
		}
	}
	status := fmt.Sprintf("%d documents | %d selected | %d jobs running",
		len(a.ports.Controller.Documents()),
		len(a.ports.Controller.Selection()),
		pending)
	if a.ports.Controller.ChatInFlight() {
		status += " | chat in flight"
	}
	return a.styles.StatusBar.Render(status + " | tab: switch  ctrl+c: quit")
}
