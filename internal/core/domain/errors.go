package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Upload & polling errors.

	// ErrUploadFailed indicates the gateway rejected an upload.
	// No job is created when this is returned.
	ErrUploadFailed = errors.New("upload failed")

	// ErrPollTransportFailed indicates a network failure during a status
	// query. The job remains in its last known state and polling resumes
	// on the next cycle.
	ErrPollTransportFailed = errors.New("status poll transport failed")

	// ErrMalformedSnapshot indicates a status snapshot failed validation
	// and was not merged.
	ErrMalformedSnapshot = errors.New("malformed job snapshot")

	// ErrTrackerClosed indicates the job tracker has been shut down.
	ErrTrackerClosed = errors.New("job tracker closed")

	// Registry errors.

	// ErrRefreshFailed indicates a document list refresh was rejected.
	// The prior snapshot is retained.
	ErrRefreshFailed = errors.New("document refresh failed")

	// ErrDeleteFailed indicates a document delete was rejected.
	// The document remains in the registry.
	ErrDeleteFailed = errors.New("document delete failed")

	// Chat errors.

	// ErrEmptyMessage indicates a chat send with no content. Nothing is
	// appended to the conversation.
	ErrEmptyMessage = errors.New("empty message")

	// ErrChatBusy indicates a chat send while another is still in flight.
	// Nothing is appended to the conversation.
	ErrChatBusy = errors.New("chat request already in flight")

	// ErrChatRequestFailed indicates a transport or server failure during
	// a chat send. The conversation gains a fallback assistant turn so it
	// is never left dangling.
	ErrChatRequestFailed = errors.New("chat request failed")
)
