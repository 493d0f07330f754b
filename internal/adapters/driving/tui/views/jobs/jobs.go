// Package jobs provides the upload and job monitor tab for the TUI.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// View is the jobs tab: a path prompt for new uploads and the live
// status of every tracked job.
type View struct {
	styles     *styles.Styles
	keys       *keymap.KeyMap
	controller driving.SessionController

	input  textinput.Model
	bar    progress.Model
	jobs   []domain.Job
	status string
	width  int
}

// NewView creates the jobs view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, controller driving.SessionController) *View {
	input := textinput.New()
	input.Placeholder = "path to a .pdf, .docx, .txt or .md file"
	input.Prompt = "upload> "
	input.Focus()

	return &View{
		styles:     s,
		keys:       keys,
		controller: controller,
		input:      input,
		bar:        progress.New(progress.WithDefaultGradient()),
	}
}

// SetJobs replaces the rendered job snapshot.
func (v *View) SetJobs(jobs []domain.Job) {
	v.jobs = jobs
}

// Update handles messages for the jobs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.bar.Width = min(40, msg.Width-30)
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Send) {
			path := strings.TrimSpace(v.input.Value())
			if path == "" {
				return v, nil
			}
			v.input.Reset()
			v.status = "uploading " + filepath.Base(path)
			return v, v.uploadCmd(path)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.UploadSubmitted:
		if msg.Err != nil {
			v.status = v.styles.Error.Render(fmt.Sprintf("upload failed: %v", msg.Err))
		} else {
			v.status = fmt.Sprintf("tracking job %s (%s)", msg.Job.ID, msg.Job.Filename)
		}
		return v, nil
	}

	return v, nil
}

// uploadCmd submits a file from the local filesystem.
func (v *View) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return messages.UploadSubmitted{Err: err}
		}
		defer f.Close()

		job, err := v.controller.Upload(context.Background(), filepath.Base(path), f)
		return messages.UploadSubmitted{Job: job, Err: err}
	}
}

// View renders the jobs tab.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Uploads"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	if v.status != "" {
		b.WriteString(v.status)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(v.jobs) == 0 {
		b.WriteString(v.styles.Muted.Render("No jobs yet. Upload a document to get started."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.styles.Title.Render("Jobs"))
	b.WriteString("\n")
	for _, job := range v.jobs {
		b.WriteString(v.renderJob(job))
		b.WriteString("\n")
	}
	return b.String()
}

// renderJob renders a single job line.
func (v *View) renderJob(job domain.Job) string {
	switch job.Status {
	case domain.JobCompleted:
		return fmt.Sprintf("  %s %s %s",
			v.styles.Success.Render("✓"),
			job.Filename,
			v.styles.Muted.Render(fmt.Sprintf("(%d chunks)", job.ChunkCount)))
	case domain.JobError:
		return fmt.Sprintf("  %s %s %s",
			v.styles.Error.Render("✗"),
			job.Filename,
			v.styles.Error.Render(job.Error))
	default:
		return fmt.Sprintf("  %s %s %s",
			v.styles.Warning.Render("…"),
			job.Filename,
			v.bar.ViewAs(float64(job.Progress)/100))
	}
}
