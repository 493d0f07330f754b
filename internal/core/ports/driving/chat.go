package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// ChatSession owns the ordered conversation and enforces single-flight
// sends: at most one outstanding chat request at a time.
type ChatSession interface {
	// Send appends a user turn, issues the chat request with the given
	// document scoping and a bounded history window, and appends the
	// assistant's reply. On transport or server failure a fallback
	// assistant turn is appended instead and the error wraps
	// domain.ErrChatRequestFailed. Empty text (domain.ErrEmptyMessage)
	// and overlapping sends (domain.ErrChatBusy) append nothing.
	Send(ctx context.Context, text string, contextFileIDs []string) (domain.Turn, error)

	// Turns returns a snapshot copy of the conversation, oldest first.
	Turns() []domain.Turn

	// InFlight reports whether a send is currently outstanding.
	InFlight() bool
}
