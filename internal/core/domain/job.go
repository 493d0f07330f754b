package domain

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle state of an ingestion job.
type JobStatus string

// Job lifecycle states. Completed and error are terminal: once a job
// reaches either, no further status queries are issued for it.
const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobError      JobStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobProcessing, JobCompleted, JobError:
		return true
	default:
		return false
	}
}

// Terminal returns true if no further polling should occur for this status.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobError
}

// String returns the string representation.
func (s JobStatus) String() string {
	return string(s)
}

// Job tracks one document's asynchronous ingestion run. It is created
// locally the instant an upload is accepted and thereafter mutated only
// by merging gateway status snapshots.
type Job struct {
	// ID is the server-assigned job identifier.
	ID string

	// Filename is the client-known name of the uploaded file.
	Filename string

	// Status is the current lifecycle state.
	Status JobStatus

	// Progress is 0-100, monotonic non-decreasing while processing.
	// Meaningless once the job is terminal.
	Progress int

	// DocumentID is set when the job completes.
	DocumentID string

	// ChunkCount is set when the job completes.
	ChunkCount int

	// Error carries the server-reported failure message for error jobs.
	Error string

	// StartedAt is when the upload was accepted.
	StartedAt time.Time

	// CompletedAt is when the job reached a terminal state.
	CompletedAt time.Time
}

// JobSnapshot is a partial job state reported by the gateway. Optional
// fields are pointers so that an absent field leaves the tracked value
// unchanged on merge.
type JobSnapshot struct {
	Status      JobStatus
	Progress    *int
	DocumentID  *string
	ChunkCount  *int
	Error       *string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Validate rejects malformed snapshots before they can corrupt a
// tracked job: unknown statuses, progress outside 0-100, and error
// statuses with no message.
func (s *JobSnapshot) Validate() error {
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrMalformedSnapshot, string(s.Status))
	}
	if s.Progress != nil && (*s.Progress < 0 || *s.Progress > 100) {
		return fmt.Errorf("%w: progress %d out of range", ErrMalformedSnapshot, *s.Progress)
	}
	if s.Status == JobError && (s.Error == nil || *s.Error == "") {
		return fmt.Errorf("%w: error status without message", ErrMalformedSnapshot)
	}
	return nil
}

// Apply merges a snapshot into the job field-wise. Fields present in
// the snapshot replace the tracked values; absent optional fields are
// left unchanged. Progress never decreases while the job is processing.
// The caller is expected to have validated the snapshot first.
func (j *Job) Apply(s *JobSnapshot) {
	j.Status = s.Status
	if s.Progress != nil {
		if *s.Progress > j.Progress {
			j.Progress = *s.Progress
		}
	}
	if s.DocumentID != nil {
		j.DocumentID = *s.DocumentID
	}
	if s.ChunkCount != nil {
		j.ChunkCount = *s.ChunkCount
	}
	if s.Error != nil {
		j.Error = *s.Error
	}
	if s.StartedAt != nil {
		j.StartedAt = *s.StartedAt
	}
	if s.CompletedAt != nil {
		j.CompletedAt = *s.CompletedAt
	}
	if j.Status.Terminal() && j.CompletedAt.IsZero() {
		j.CompletedAt = time.Now()
	}
}

// UploadAccepted is the gateway's acknowledgement of an upload.
type UploadAccepted struct {
	// JobID identifies the ingestion job the server started.
	JobID string

	// Status is the initial job status, typically "processing".
	Status JobStatus
}
