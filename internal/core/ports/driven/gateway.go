package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// Gateway is the remote service that performs document parsing,
// chunking, embedding and answer generation. The transport is an
// adapter concern; core services only see this contract.
//
// Implementations must honour context cancellation on every call.
type Gateway interface {
	// Upload submits a file for ingestion. The returned acknowledgement
	// carries the server-assigned job id and the initial job status.
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadAccepted, error)

	// JobStatus returns a partial snapshot of an ingestion job.
	// It is polled repeatedly until the job is terminal.
	JobStatus(ctx context.Context, jobID string) (*domain.JobSnapshot, error)

	// ListDocuments returns the full ordered document list.
	// No pagination contract is assumed.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes an ingested document and its chunks.
	DeleteDocument(ctx context.Context, documentID string) error

	// Chat sends a message with optional document scoping and bounded
	// history, returning the assistant's answer and cited sources.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}
