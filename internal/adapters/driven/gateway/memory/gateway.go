// Package memory provides an in-memory implementation of driven.Gateway.
// It backs service tests and offline demos: jobs are scripted with
// queued status results, and the list/chat operations can be replaced
// with hooks when a test needs to control timing.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.Gateway = (*Gateway)(nil)

// statusResult is one scripted answer to a status query.
type statusResult struct {
	snap *domain.JobSnapshot
	err  error
}

// Gateway is an in-memory gateway double.
type Gateway struct {
	mu sync.Mutex

	documents []domain.Document
	uploads   []string // filenames in submission order
	nextJob   int

	statusQueues map[string][]statusResult
	statusCalls  map[string]int
	listCalls    int
	chatCalls    int

	uploadErr error
	listErr   error
	deleteErr error
	chatErr   error

	// ListFn, when set, fully replaces ListDocuments.
	ListFn func(ctx context.Context) ([]domain.Document, error)

	// ChatFn, when set, fully replaces Chat.
	ChatFn func(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)

	chatRequests []domain.ChatRequest
}

// NewGateway creates an empty in-memory gateway.
func NewGateway() *Gateway {
	return &Gateway{
		statusQueues: make(map[string][]statusResult),
		statusCalls:  make(map[string]int),
	}
}

// SeedDocuments sets the document list returned by ListDocuments.
func (g *Gateway) SeedDocuments(docs ...domain.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.documents = append([]domain.Document(nil), docs...)
}

// QueueStatus scripts successive JobStatus answers for a job. Once the
// queue is drained the last entry repeats.
func (g *Gateway) QueueStatus(jobID string, snaps ...domain.JobSnapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range snaps {
		snap := snaps[i]
		g.statusQueues[jobID] = append(g.statusQueues[jobID], statusResult{snap: &snap})
	}
}

// QueueStatusError scripts a failed status query for a job.
func (g *Gateway) QueueStatusError(jobID string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusQueues[jobID] = append(g.statusQueues[jobID], statusResult{err: err})
}

// FailUploads makes Upload return the given error.
func (g *Gateway) FailUploads(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.uploadErr = err
}

// FailList makes ListDocuments return the given error.
func (g *Gateway) FailList(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listErr = err
}

// FailDelete makes DeleteDocument return the given error.
func (g *Gateway) FailDelete(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteErr = err
}

// FailChat makes Chat return the given error.
func (g *Gateway) FailChat(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chatErr = err
}

// Upload accepts any file handle and assigns sequential job ids.
func (g *Gateway) Upload(_ context.Context, filename string, content io.Reader) (*domain.UploadAccepted, error) {
	if content != nil {
		_, _ = io.Copy(io.Discard, content)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	g.nextJob++
	g.uploads = append(g.uploads, filename)
	return &domain.UploadAccepted{
		JobID:  fmt.Sprintf("job-%d", g.nextJob),
		Status: domain.JobProcessing,
	}, nil
}

// JobStatus pops the next scripted result for the job, repeating the
// last one once the queue is drained.
func (g *Gateway) JobStatus(_ context.Context, jobID string) (*domain.JobSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.statusCalls[jobID]++
	queue := g.statusQueues[jobID]
	if len(queue) == 0 {
		return nil, domain.ErrNotFound
	}

	result := queue[0]
	if len(queue) > 1 {
		g.statusQueues[jobID] = queue[1:]
	}
	if result.err != nil {
		return nil, result.err
	}
	snap := *result.snap
	return &snap, nil
}

// ListDocuments returns the seeded list, or delegates to ListFn.
func (g *Gateway) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	g.mu.Lock()
	listFn := g.ListFn
	g.listCalls++
	g.mu.Unlock()

	if listFn != nil {
		return listFn(ctx)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	docs := make([]domain.Document, len(g.documents))
	copy(docs, g.documents)
	return docs, nil
}

// DeleteDocument removes a seeded document.
func (g *Gateway) DeleteDocument(_ context.Context, documentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i, d := range g.documents {
		if d.ID == documentID {
			g.documents = append(g.documents[:i], g.documents[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Chat records the request and echoes the message back, or delegates
// to ChatFn.
func (g *Gateway) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	g.mu.Lock()
	g.chatCalls++
	g.chatRequests = append(g.chatRequests, req)
	chatFn := g.ChatFn
	chatErr := g.chatErr
	g.mu.Unlock()

	if chatFn != nil {
		return chatFn(ctx, req)
	}
	if chatErr != nil {
		return nil, chatErr
	}
	return &domain.ChatResponse{
		Response:    "echo: " + req.Message,
		ContextUsed: len(req.ContextFileIDs) > 0,
	}, nil
}

// StatusCalls returns how many status queries a job received.
func (g *Gateway) StatusCalls(jobID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusCalls[jobID]
}

// ListCalls returns how many list requests were made.
func (g *Gateway) ListCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls
}

// ChatCalls returns how many chat requests were made.
func (g *Gateway) ChatCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chatCalls
}

// ChatRequests returns the recorded chat requests in order.
func (g *Gateway) ChatRequests() []domain.ChatRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	reqs := make([]domain.ChatRequest, len(g.chatRequests))
	copy(reqs, g.chatRequests)
	return reqs
}

// Uploads returns the uploaded filenames in submission order.
func (g *Gateway) Uploads() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, len(g.uploads))
	copy(names, g.uploads)
	return names
}
