// Package watcher provides a directory watcher that submits new files
// for ingestion. It is the CLI counterpart of the web UI's drop zone:
// files appearing in the watched directory are uploaded through the job
// tracker, with the same accepted-kind gate the capture widget applies.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet after its last
// write before it is uploaded. Copies into the watched directory arrive
// as a create followed by a burst of writes.
const DefaultSettleDelay = 500 * time.Millisecond

// AcceptedExtensions are the upload kinds the capture layer admits:
// PDF, word-processing documents, plain text and markdown.
var AcceptedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".txt":  {},
	".md":   {},
}

// Watcher submits files appearing in a directory to the job tracker.
type Watcher struct {
	tracker     driving.JobTracker
	settleDelay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a directory watcher over the given tracker.
func New(tracker driving.JobTracker, settleDelay time.Duration) *Watcher {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &Watcher{
		tracker:     tracker,
		settleDelay: settleDelay,
		pending:     make(map[string]*time.Timer),
	}
}

// Accepts reports whether a path has an accepted upload extension.
func Accepts(path string) bool {
	_, ok := AcceptedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Run watches dir until ctx is cancelled, uploading each accepted file
// once its writes have settled.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return err
	}
	logger.Info("Watching %s for documents", dir)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !Accepts(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// schedule arms (or re-arms) the settle timer for a path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(w.settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.upload(ctx, path)
	})
}

// upload submits one settled file.
func (w *Watcher) upload(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return
	}
	defer f.Close()

	job, err := w.tracker.Submit(ctx, filepath.Base(path), f)
	if err != nil {
		logger.Error("Upload of %s failed: %v", path, err)
		return
	}
	logger.Info("Uploaded %s as job %s", path, job.ID)
}

// cancelPending stops all armed settle timers.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
