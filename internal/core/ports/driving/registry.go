package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DocumentRegistry owns the canonical document list and the user's
// selection subset. The selection is always a subset of the known
// document ids; stale ids are pruned on every refresh.
type DocumentRegistry interface {
	// Refresh fetches the full document list and replaces the tracked
	// set wholesale, pruning the selection to surviving ids. A stale
	// response (overtaken by a newer refresh) is discarded. On failure
	// the prior snapshot is retained and the error wraps
	// domain.ErrRefreshFailed.
	Refresh(ctx context.Context) ([]domain.Document, error)

	// Select adds a known document id to the selection. Unknown ids are
	// a no-op.
	Select(id string)

	// Deselect removes an id from the selection.
	Deselect(id string)

	// ToggleSelect flips one id's selection state.
	ToggleSelect(id string)

	// SelectAll toggles between all documents selected and none.
	SelectAll()

	// ClearSelection empties the selection.
	ClearSelection()

	// Delete removes a document remotely, then from the local list and
	// the selection atomically. On failure nothing changes locally and
	// the error wraps domain.ErrDeleteFailed.
	Delete(ctx context.Context, id string) error

	// Documents returns a snapshot copy of the current document list.
	Documents() []domain.Document

	// Selection returns the selected ids in document-list order.
	Selection() []string

	// IsSelected reports whether an id is currently selected.
	IsSelected(id string) bool
}
