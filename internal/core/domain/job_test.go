package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestJobStatus_Terminal(t *testing.T) {
	assert.False(t, JobProcessing.Terminal())
	assert.True(t, JobCompleted.Terminal())
	assert.True(t, JobError.Terminal())
}

func TestJobStatus_IsValid(t *testing.T) {
	assert.True(t, JobProcessing.IsValid())
	assert.True(t, JobCompleted.IsValid())
	assert.True(t, JobError.IsValid())
	assert.False(t, JobStatus("queued").IsValid())
	assert.False(t, JobStatus("").IsValid())
}

func TestJobSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    JobSnapshot
		wantErr bool
	}{
		{"processing with progress", JobSnapshot{Status: JobProcessing, Progress: ptr(40)}, false},
		{"completed", JobSnapshot{Status: JobCompleted, DocumentID: ptr("d1")}, false},
		{"error with message", JobSnapshot{Status: JobError, Error: ptr("parse failure")}, false},
		{"unknown status", JobSnapshot{Status: "paused"}, true},
		{"progress too high", JobSnapshot{Status: JobProcessing, Progress: ptr(101)}, true},
		{"progress negative", JobSnapshot{Status: JobProcessing, Progress: ptr(-1)}, true},
		{"error without message", JobSnapshot{Status: JobError}, true},
		{"error with empty message", JobSnapshot{Status: JobError, Error: ptr("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedSnapshot)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestJob_Apply_FieldwiseMerge(t *testing.T) {
	job := Job{ID: "j1", Filename: "report.pdf", Status: JobProcessing, Progress: 10}

	job.Apply(&JobSnapshot{Status: JobProcessing, Progress: ptr(40)})
	assert.Equal(t, JobProcessing, job.Status)
	assert.Equal(t, 40, job.Progress)
	// Absent optional fields leave tracked values unchanged.
	assert.Equal(t, "report.pdf", job.Filename)
	assert.Empty(t, job.DocumentID)

	job.Apply(&JobSnapshot{Status: JobCompleted, DocumentID: ptr("d1"), ChunkCount: ptr(12)})
	assert.Equal(t, JobCompleted, job.Status)
	assert.Equal(t, "d1", job.DocumentID)
	assert.Equal(t, 12, job.ChunkCount)
	assert.False(t, job.CompletedAt.IsZero())
}

func TestJob_Apply_ProgressNeverDecreases(t *testing.T) {
	job := Job{ID: "j1", Status: JobProcessing, Progress: 60}

	job.Apply(&JobSnapshot{Status: JobProcessing, Progress: ptr(45)})
	assert.Equal(t, 60, job.Progress)

	job.Apply(&JobSnapshot{Status: JobProcessing, Progress: ptr(80)})
	assert.Equal(t, 80, job.Progress)
}

func TestJob_Apply_ErrorStatus(t *testing.T) {
	job := Job{ID: "j1", Status: JobProcessing, Progress: 30}

	job.Apply(&JobSnapshot{Status: JobError, Error: ptr("unsupported encoding")})
	assert.Equal(t, JobError, job.Status)
	assert.Equal(t, "unsupported encoding", job.Error)
	assert.False(t, job.CompletedAt.IsZero())
}

func TestJob_Apply_KeepsReportedCompletedAt(t *testing.T) {
	done := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	job := Job{ID: "j1", Status: JobProcessing}

	job.Apply(&JobSnapshot{Status: JobCompleted, CompletedAt: ptr(done)})
	assert.Equal(t, done, job.CompletedAt)
}
