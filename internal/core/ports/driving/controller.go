package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// SessionController composes the job tracker, document registry and
// chat session behind the operations the presentation layer calls.
// External collaborators receive read-only snapshots and must not
// mutate them in place.
type SessionController interface {
	// Run drives the session's background work: an immediate document
	// refresh, a periodic refresh for the lifetime of the session, and a
	// refresh whenever an ingestion job completes. It blocks until ctx
	// is cancelled.
	Run(ctx context.Context) error

	// Upload submits a file for ingestion and tracks the job.
	Upload(ctx context.Context, filename string, content io.Reader) (domain.Job, error)

	// RefreshDocuments reloads the document list on demand.
	RefreshDocuments(ctx context.Context) ([]domain.Document, error)

	// ToggleSelection flips one document's membership in the selection.
	ToggleSelection(id string)

	// SelectAllDocuments toggles between all selected and none.
	SelectAllDocuments()

	// ClearSelection empties the selection.
	ClearSelection()

	// DeleteDocument removes a document and triggers a refresh.
	DeleteDocument(ctx context.Context, id string) error

	// SendMessage sends a chat message scoped to the current selection.
	SendMessage(ctx context.Context, text string) (domain.Turn, error)

	// Read-only views for rendering.
	Jobs() []domain.Job
	Documents() []domain.Document
	Selection() []string
	IsSelected(id string) bool
	Conversation() []domain.Turn
	ChatInFlight() bool

	// Close cancels all poll chains. After Close no background task
	// mutates controller state.
	Close()
}
