package services

import (
	"context"
	"io"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure SessionController implements the interface.
var _ driving.SessionController = (*SessionController)(nil)

// DefaultRefreshInterval is how often the controller reloads the
// document list while the session is alive.
const DefaultRefreshInterval = 10 * time.Second

// ControllerConfig tunes the session controller.
type ControllerConfig struct {
	// RefreshInterval is the period of the background document refresh.
	RefreshInterval time.Duration
}

func (c *ControllerConfig) applyDefaults() {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
}

// SessionController composes the job tracker, document registry and
// chat session for one user session and owns the session's background
// refresh loop.
type SessionController struct {
	tracker  driving.JobTracker
	registry driving.DocumentRegistry
	chat     driving.ChatSession
	cfg      ControllerConfig
}

// NewSessionController creates a controller over the three services.
func NewSessionController(
	tracker driving.JobTracker,
	registry driving.DocumentRegistry,
	chat driving.ChatSession,
	cfg ControllerConfig,
) *SessionController {
	cfg.applyDefaults()
	return &SessionController{
		tracker:  tracker,
		registry: registry,
		chat:     chat,
		cfg:      cfg,
	}
}

// Run drives the session's background work: an immediate document
// refresh, a periodic refresh, and a refresh whenever an ingestion job
// completes. It blocks until ctx is cancelled; cancelling ctx is how
// the owning view tears the loop down, so no orphaned task keeps
// mutating state that is no longer observed.
func (c *SessionController) Run(ctx context.Context) error {
	c.refresh(ctx)

	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.refresh(ctx)
		case job := <-c.tracker.Completions():
			logger.Info("Job %s completed (document %s), refreshing", job.ID, job.DocumentID)
			c.refresh(ctx)
		}
	}
}

// refresh reloads the registry, logging instead of propagating:
// a failed background refresh retains the prior snapshot and the next
// tick retries.
func (c *SessionController) refresh(ctx context.Context) {
	if _, err := c.registry.Refresh(ctx); err != nil {
		logger.Warn("Document refresh failed: %v", err)
	}
}

// Upload submits a file for ingestion and tracks the job.
func (c *SessionController) Upload(ctx context.Context, filename string, content io.Reader) (domain.Job, error) {
	return c.tracker.Submit(ctx, filename, content)
}

// RefreshDocuments reloads the document list on demand.
func (c *SessionController) RefreshDocuments(ctx context.Context) ([]domain.Document, error) {
	return c.registry.Refresh(ctx)
}

// ToggleSelection flips one document's membership in the selection.
func (c *SessionController) ToggleSelection(id string) {
	c.registry.ToggleSelect(id)
}

// SelectAllDocuments toggles between all selected and none.
func (c *SessionController) SelectAllDocuments() {
	c.registry.SelectAll()
}

// ClearSelection empties the selection.
func (c *SessionController) ClearSelection() {
	c.registry.ClearSelection()
}

// DeleteDocument removes a document and reloads the list so the view
// converges on the server's state.
func (c *SessionController) DeleteDocument(ctx context.Context, id string) error {
	if err := c.registry.Delete(ctx, id); err != nil {
		return err
	}
	c.refresh(ctx)
	return nil
}

// SendMessage sends a chat message scoped to the current selection.
func (c *SessionController) SendMessage(ctx context.Context, text string) (domain.Turn, error) {
	return c.chat.Send(ctx, text, c.registry.Selection())
}

// Jobs returns the tracked jobs in submission order.
func (c *SessionController) Jobs() []domain.Job {
	return c.tracker.Jobs()
}

// Documents returns the current document list.
func (c *SessionController) Documents() []domain.Document {
	return c.registry.Documents()
}

// Selection returns the selected document ids.
func (c *SessionController) Selection() []string {
	return c.registry.Selection()
}

// IsSelected reports whether the document is in the selection.
func (c *SessionController) IsSelected(id string) bool {
	return c.registry.IsSelected(id)
}

// Conversation returns the chat turns, oldest first.
func (c *SessionController) Conversation() []domain.Turn {
	return c.chat.Turns()
}

// ChatInFlight reports whether a chat send is outstanding.
func (c *SessionController) ChatInFlight() bool {
	return c.chat.InFlight()
}

// Close cancels all active poll chains.
func (c *SessionController) Close() {
	c.tracker.Close()
}
