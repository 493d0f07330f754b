// Package documents provides the document selection tab for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// View is the documents tab: a cursor list with checkbox selection and
// a delete confirmation prompt.
type View struct {
	styles     *styles.Styles
	keys       *keymap.KeyMap
	controller driving.SessionController

	docs       []domain.Document
	cursor     int
	confirming string // document id awaiting delete confirmation, empty otherwise
	status     string
}

// NewView creates the documents view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, controller driving.SessionController) *View {
	return &View{
		styles:     s,
		keys:       keys,
		controller: controller,
	}
}

// SetDocuments replaces the rendered document list, keeping the cursor
// in range.
func (v *View) SetDocuments(docs []domain.Document) {
	v.docs = docs
	if v.cursor >= len(docs) {
		v.cursor = len(docs) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.confirming != "" {
			return v.updateConfirming(msg)
		}
		return v.updateBrowsing(msg)

	case messages.DocumentsRefreshed:
		if msg.Err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("refresh failed: %v", msg.Err))
		} else {
			v.status = "refreshed"
		}
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("delete failed: %v", msg.Err))
		} else {
			v.status = "deleted " + msg.Filename
		}
		return v, nil
	}

	return v, nil
}

func (v *View) updateBrowsing(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.docs)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Toggle):
		if doc := v.current(); doc != nil {
			v.controller.ToggleSelection(doc.ID)
		}
	case key.Matches(msg, v.keys.SelectAll):
		v.controller.SelectAllDocuments()
	case key.Matches(msg, v.keys.Refresh):
		return v, v.refreshCmd()
	case key.Matches(msg, v.keys.Delete):
		if doc := v.current(); doc != nil {
			v.confirming = doc.ID
		}
	}
	return v, nil
}

func (v *View) updateConfirming(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.confirming
		v.confirming = ""
		return v, v.deleteCmd(id)
	case "n", "N", "esc":
		v.confirming = ""
	}
	return v, nil
}

func (v *View) current() *domain.Document {
	if v.cursor < 0 || v.cursor >= len(v.docs) {
		return nil
	}
	return &v.docs[v.cursor]
}

func (v *View) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		docs, err := v.controller.RefreshDocuments(context.Background())
		return messages.DocumentsRefreshed{Documents: docs, Err: err}
	}
}

func (v *View) deleteCmd(id string) tea.Cmd {
	filename := ""
	for _, doc := range v.docs {
		if doc.ID == id {
			filename = doc.Filename
		}
	}
	return func() tea.Msg {
		err := v.controller.DeleteDocument(context.Background(), id)
		return messages.DocumentDeleted{ID: id, Filename: filename, Err: err}
	}
}

// View renders the documents tab.
func (v *View) View() string {
	var b strings.Builder

	selected := len(v.controller.Selection())
	title := fmt.Sprintf("Documents (%d selected)", selected)
	if selected == 0 {
		title = "Documents (all consulted)"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if len(v.docs) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents in the knowledge base yet."))
		b.WriteString("\n")
		return b.String()
	}

	for i, doc := range v.docs {
		b.WriteString(v.renderDocument(i, doc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.confirming != "" {
		b.WriteString(v.styles.Warning.Render("Delete this document? (y/n)"))
		b.WriteString("\n")
	} else if v.status != "" {
		b.WriteString(v.styles.Muted.Render(v.status))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Muted.Render("space: select  a: select all  d: delete  r: refresh"))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderDocument(i int, doc domain.Document) string {
	checkbox := "[ ]"
	if v.controller.IsSelected(doc.ID) {
		checkbox = "[x]"
	}

	meta := fmt.Sprintf("%d chunks", doc.ChunkCount)
	if doc.PageCount > 0 {
		meta += fmt.Sprintf(", %d pages", doc.PageCount)
	}
	if doc.Language != "" {
		meta += ", " + doc.Language
	}

	line := fmt.Sprintf("%s %s %s", checkbox, doc.Filename, v.styles.Muted.Render("("+meta+")"))
	if i == v.cursor {
		return v.styles.ListCursor.Render("> " + line)
	}
	return v.styles.ListItem.Render("  " + line)
}
