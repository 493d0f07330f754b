// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm
// architecture.
package messages

import (
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// TabType identifies which tab is currently active.
type TabType int

const (
	// TabJobs is the upload and job monitor tab.
	TabJobs TabType = iota
	// TabDocuments is the document list and selection tab.
	TabDocuments
	// TabChat is the conversation tab.
	TabChat
)

// String returns the string representation of the tab.
func (t TabType) String() string {
	switch t {
	case TabJobs:
		return "jobs"
	case TabDocuments:
		return "documents"
	case TabChat:
		return "chat"
	default:
		return "unknown"
	}
}

// Tick is the periodic repaint signal; job progress and document
// refreshes happen in the background, so views re-read controller
// snapshots on every tick.
type Tick struct{}

// UploadSubmitted carries the result of an upload submission.
type UploadSubmitted struct {
	Job domain.Job
	Err error
}

// DocumentsRefreshed carries the result of an on-demand refresh.
type DocumentsRefreshed struct {
	Documents []domain.Document
	Err       error
}

// DocumentDeleted signals a document delete attempt finished.
type DocumentDeleted struct {
	ID       string
	Filename string
	Err      error
}

// ChatReplied signals a chat send resolved (reply or fallback).
type ChatReplied struct {
	Turn domain.Turn
	Err  error
}

// TranscriptSaved signals a transcript export finished.
type TranscriptSaved struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
