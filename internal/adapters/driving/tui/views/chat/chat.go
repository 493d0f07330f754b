// Package chat provides the conversation tab for the TUI.
package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/transcript"
)

// View is the chat tab: a scrolling conversation, an input line and a
// spinner while a reply is outstanding.
type View struct {
	styles     *styles.Styles
	keys       *keymap.KeyMap
	controller driving.SessionController

	input   textinput.Model
	spin    spinner.Model
	vp      viewport.Model
	turns   []domain.Turn
	sending bool
	status  string
	ready   bool
}

// NewView creates the chat view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, controller driving.SessionController) *View {
	input := textinput.New()
	input.Placeholder = "ask about your documents"
	input.Prompt = "> "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &View{
		styles:     s,
		keys:       keys,
		controller: controller,
		input:      input,
		spin:       spin,
	}
}

// SetTurns replaces the rendered conversation.
func (v *View) SetTurns(turns []domain.Turn) {
	if len(turns) == len(v.turns) {
		return
	}
	v.turns = turns
	if v.ready {
		v.vp.SetContent(v.renderTurns())
		v.vp.GotoBottom()
	}
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the tab bar, context line, input and status bar.
		height := msg.Height - 8
		if height < 3 {
			height = 3
		}
		if !v.ready {
			v.vp = viewport.New(msg.Width, height)
			v.ready = true
		} else {
			v.vp.Width = msg.Width
			v.vp.Height = height
		}
		v.vp.SetContent(v.renderTurns())
		v.vp.GotoBottom()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Send):
			text := strings.TrimSpace(v.input.Value())
			if text == "" || v.sending {
				return v, nil
			}
			v.input.Reset()
			v.sending = true
			v.status = ""
			return v, tea.Batch(v.sendCmd(text), v.spin.Tick)

		case key.Matches(msg, v.keys.SaveTranscript):
			return v, v.saveCmd()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case spinner.TickMsg:
		if !v.sending {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case messages.ChatReplied:
		v.sending = false
		v.SetTurns(v.controller.Conversation())
		return v, nil

	case messages.TranscriptSaved:
		if msg.Err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("save failed: %v", msg.Err))
		} else {
			v.status = "transcript saved to " + msg.Path
		}
		return v, nil
	}

	return v, nil
}

// sendCmd sends the message scoped to the current selection. The
// fallback turn on failure is appended by the session itself, so either
// way the reply shows up in the conversation.
func (v *View) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		turn, err := v.controller.SendMessage(context.Background(), text)
		return messages.ChatReplied{Turn: turn, Err: err}
	}
}

// saveCmd exports the conversation as HTML next to the working
// directory.
func (v *View) saveCmd() tea.Cmd {
	turns := v.controller.Conversation()
	return func() tea.Msg {
		if len(turns) == 0 {
			return messages.TranscriptSaved{Err: fmt.Errorf("nothing to save")}
		}
		data, err := transcript.Render(turns)
		if err != nil {
			return messages.TranscriptSaved{Err: err}
		}
		path := filepath.Join(".", fmt.Sprintf("docchat-%s.html", time.Now().Format("20060102-150405")))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return messages.TranscriptSaved{Err: err}
		}
		return messages.TranscriptSaved{Path: path}
	}
}

// View renders the chat tab.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.contextLine())
	b.WriteString("\n")

	if v.ready {
		b.WriteString(v.vp.View())
	} else {
		b.WriteString(v.renderTurns())
	}
	b.WriteString("\n")

	if v.sending {
		b.WriteString(v.spin.View())
		b.WriteString(v.styles.Muted.Render(" thinking"))
	} else {
		b.WriteString(v.input.View())
	}
	b.WriteString("\n")

	if v.status != "" {
		b.WriteString(v.styles.Muted.Render(v.status))
		b.WriteString("\n")
	}

	return b.String()
}

// contextLine says which documents the next question will consult.
func (v *View) contextLine() string {
	selection := v.controller.Selection()
	if len(selection) == 0 {
		return v.styles.Muted.Render("Consulting all documents")
	}

	byID := make(map[string]string, len(v.controller.Documents()))
	for _, doc := range v.controller.Documents() {
		byID[doc.ID] = doc.Filename
	}
	names := make([]string, 0, len(selection))
	for _, id := range selection {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return v.styles.Muted.Render("Consulting: " + strings.Join(names, ", "))
}

func (v *View) renderTurns() string {
	if len(v.turns) == 0 {
		return v.styles.Muted.Render("No messages yet. Ask something about your documents.")
	}

	var b strings.Builder
	for _, turn := range v.turns {
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(v.styles.UserTurn.Render("you: " + turn.Content))
		default:
			b.WriteString(v.styles.AssistantTurn.Render("assistant: " + turn.Content))
			if len(turn.Sources) > 0 {
				b.WriteString("\n")
				b.WriteString(v.styles.Muted.Render("  sources: " + renderSources(turn.Sources)))
			}
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderSources(sources []domain.SourceRef) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, fmt.Sprintf("%s (chunk %d, %.2f)", s.Filename, s.ChunkIndex, s.Score))
	}
	return strings.Join(parts, "; ")
}
