package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure JobTracker implements the interface.
var _ driving.JobTracker = (*JobTracker)(nil)

// Tracker defaults.
const (
	DefaultPollInterval    = 2 * time.Second
	DefaultCallTimeout     = 30 * time.Second
	DefaultPollDeadline    = 10 * time.Minute
	DefaultMaxPollFailures = 5
)

// TrackerConfig tunes the polling behaviour.
type TrackerConfig struct {
	// PollInterval is the fixed delay between status queries for a job.
	PollInterval time.Duration

	// CallTimeout bounds each outbound gateway call. A timed-out call is
	// handled the same way as a transport failure.
	CallTimeout time.Duration

	// PollDeadline is the maximum total polling duration per job. On
	// expiry the job is marked error with a timeout reason.
	PollDeadline time.Duration

	// MaxPollFailures is the number of consecutive failed status queries
	// tolerated before the job is marked error.
	MaxPollFailures int
}

func (c *TrackerConfig) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	if c.PollDeadline <= 0 {
		c.PollDeadline = DefaultPollDeadline
	}
	if c.MaxPollFailures <= 0 {
		c.MaxPollFailures = DefaultMaxPollFailures
	}
}

// JobTracker owns the set of upload jobs and runs one cancellable poll
// chain per job, keyed by job id. Chains for different jobs never block
// each other, and a chain issues at most one outstanding status query
// at a time.
type JobTracker struct {
	gateway driven.Gateway
	cfg     TrackerConfig

	mu      sync.RWMutex
	jobs    map[string]*domain.Job
	order   []string
	cancels map[string]context.CancelFunc
	closed  bool

	completions chan domain.Job
	wg          sync.WaitGroup
}

// NewJobTracker creates a job tracker using the given gateway.
func NewJobTracker(gateway driven.Gateway, cfg TrackerConfig) *JobTracker {
	cfg.applyDefaults()
	return &JobTracker{
		gateway:     gateway,
		cfg:         cfg,
		jobs:        make(map[string]*domain.Job),
		cancels:     make(map[string]context.CancelFunc),
		completions: make(chan domain.Job, 16),
	}
}

// Submit uploads a file and begins polling the resulting job. On
// gateway failure no job is created; the tracker does not retry.
func (t *JobTracker) Submit(ctx context.Context, filename string, content io.Reader) (domain.Job, error) {
	t.mu.RLock()
	closed := t.closed
	t.mu.RUnlock()
	if closed {
		return domain.Job{}, domain.ErrTrackerClosed
	}

	callCtx, cancel := context.WithTimeout(ctx, t.cfg.CallTimeout)
	defer cancel()

	accepted, err := t.gateway.Upload(callCtx, filename, content)
	if err != nil {
		return domain.Job{}, fmt.Errorf("%w: %s: %v", domain.ErrUploadFailed, filename, err)
	}

	job := domain.Job{
		ID:        accepted.JobID,
		Filename:  filename,
		Status:    domain.JobProcessing,
		Progress:  0,
		StartedAt: time.Now(),
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return domain.Job{}, domain.ErrTrackerClosed
	}
	stored := job
	t.jobs[job.ID] = &stored
	t.order = append(t.order, job.ID)

	// One cancellable chain per job id, detached from the submit ctx so
	// the chain outlives the caller. Close tears all chains down.
	chainCtx, chainCancel := context.WithCancel(context.Background())
	t.cancels[job.ID] = chainCancel
	t.wg.Add(1)
	t.mu.Unlock()

	logger.Info("Upload accepted: %s (job %s)", filename, job.ID)
	go t.pollChain(chainCtx, job.ID)

	return job, nil
}

// pollChain polls one job until it reaches a terminal state, the poll
// deadline expires, too many consecutive queries fail, or the chain is
// cancelled. The first query is issued immediately.
func (t *JobTracker) pollChain(ctx context.Context, jobID string) {
	defer t.wg.Done()
	defer t.dropChain(jobID)

	deadline := time.Now().Add(t.cfg.PollDeadline)
	failures := 0

	for {
		snap, err := t.queryStatus(ctx, jobID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return // chain cancelled
			}
			failures++
			logger.Warn("Job %s status query failed (%d/%d): %v", jobID, failures, t.cfg.MaxPollFailures, err)
			if failures >= t.cfg.MaxPollFailures {
				t.failJob(jobID, fmt.Sprintf("status polling failed after %d attempts: %v", failures, err))
				return
			}

		default:
			failures = 0
			status := t.merge(jobID, snap)
			if status == domain.JobCompleted {
				t.emitCompletion(jobID)
				return
			}
			if status.Terminal() {
				return
			}
		}

		if time.Now().After(deadline) {
			t.failJob(jobID, fmt.Sprintf("ingestion timed out after %s", t.cfg.PollDeadline))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(t.cfg.PollInterval):
		}
	}
}

// queryStatus issues a single bounded status query and validates the
// snapshot. A timeout, transport failure or malformed snapshot all
// count as one failed cycle; none of them mark the job as error.
func (t *JobTracker) queryStatus(ctx context.Context, jobID string) (*domain.JobSnapshot, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.cfg.CallTimeout)
	defer cancel()

	snap, err := t.gateway.JobStatus(callCtx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPollTransportFailed, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// merge applies a validated snapshot to the tracked job and returns the
// merged status.
func (t *JobTracker) merge(jobID string, snap *domain.JobSnapshot) domain.JobStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok {
		return domain.JobError
	}
	job.Apply(snap)
	if job.Status == domain.JobError {
		logger.Warn("Job %s failed: %s", jobID, job.Error)
	} else {
		logger.Debug("Job %s: %s %d%%", jobID, job.Status, job.Progress)
	}
	return job.Status
}

// failJob marks a job as error with a client-side reason.
func (t *JobTracker) failJob(jobID, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok || job.Status.Terminal() {
		return
	}
	job.Status = domain.JobError
	job.Error = reason
	job.CompletedAt = time.Now()
	logger.Warn("Job %s failed: %s", jobID, reason)
}

// emitCompletion publishes a completed job without ever blocking the
// poll chain. A full channel only delays the next document refresh.
func (t *JobTracker) emitCompletion(jobID string) {
	job, ok := t.Job(jobID)
	if !ok {
		return
	}
	select {
	case t.completions <- job:
	default:
		logger.Warn("Completion signal dropped for job %s", jobID)
	}
}

// dropChain forgets a finished chain's cancel func.
func (t *JobTracker) dropChain(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cancels, jobID)
}

// Jobs returns snapshot copies of all tracked jobs in submission order.
func (t *JobTracker) Jobs() []domain.Job {
	t.mu.RLock()
	defer t.mu.RUnlock()

	jobs := make([]domain.Job, 0, len(t.order))
	for _, id := range t.order {
		if job, ok := t.jobs[id]; ok {
			jobs = append(jobs, *job)
		}
	}
	return jobs
}

// Job returns a snapshot copy of one tracked job.
func (t *JobTracker) Job(id string) (domain.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	job, ok := t.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return *job, true
}

// Completions delivers jobs as they complete. The channel is never
// closed; it simply goes quiet once the tracker is closed.
func (t *JobTracker) Completions() <-chan domain.Job {
	return t.completions
}

// Close cancels every active poll chain and waits for them to stop.
func (t *JobTracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	for _, cancel := range t.cancels {
		cancel()
	}
	t.mu.Unlock()

	t.wg.Wait()
}
