package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// JobTracker owns the set of in-flight and completed upload jobs and
// runs one independent poll chain per job.
type JobTracker interface {
	// Submit uploads a file and begins tracking the resulting job.
	// On gateway failure no job is created and the error wraps
	// domain.ErrUploadFailed; the tracker does not retry.
	Submit(ctx context.Context, filename string, content io.Reader) (domain.Job, error)

	// Jobs returns a snapshot copy of all tracked jobs in submission order.
	Jobs() []domain.Job

	// Job returns a snapshot copy of one tracked job.
	Job(id string) (domain.Job, bool)

	// Completions delivers jobs as they reach the completed state.
	// Consumers use it to trigger a document refresh.
	Completions() <-chan domain.Job

	// Close cancels every active poll chain and waits for them to stop.
	// No status queries are issued after Close returns.
	Close()
}
