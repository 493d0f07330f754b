package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/gateway/memory"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
)

func TestAccepts(t *testing.T) {
	assert.True(t, Accepts("report.pdf"))
	assert.True(t, Accepts("notes.MD"))
	assert.True(t, Accepts("/tmp/deep/letter.docx"))
	assert.False(t, Accepts("archive.zip"))
	assert.False(t, Accepts("noext"))
}

func TestWatcher_UploadsNewFile(t *testing.T) {
	dir := t.TempDir()
	gw := memory.NewGateway()
	gw.QueueStatus("job-1", domain.JobSnapshot{Status: domain.JobCompleted, DocumentID: strPtr("d1")})
	tracker := services.NewJobTracker(gw, services.TrackerConfig{
		PollInterval: 5 * time.Millisecond,
	})
	defer tracker.Close()

	w := New(tracker, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, dir)
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(50 * time.Millisecond)
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0600))

	require.Eventually(t, func() bool {
		uploads := gw.Uploads()
		return len(uploads) == 1 && uploads[0] == "report.pdf"
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestWatcher_IgnoresUnacceptedKinds(t *testing.T) {
	dir := t.TempDir()
	gw := memory.NewGateway()
	tracker := services.NewJobTracker(gw, services.TrackerConfig{
		PollInterval: 5 * time.Millisecond,
	})
	defer tracker.Close()

	w := New(tracker, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Run(ctx, dir) }()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive.zip"), []byte("PK"), 0600))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, gw.Uploads())
}

func strPtr(s string) *string { return &s }
