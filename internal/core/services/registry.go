package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure DocumentRegistry implements the interface.
var _ driving.DocumentRegistry = (*DocumentRegistry)(nil)

// RegistryConfig tunes the document registry.
type RegistryConfig struct {
	// CallTimeout bounds each outbound gateway call.
	CallTimeout time.Duration
}

func (c *RegistryConfig) applyDefaults() {
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
}

// DocumentRegistry owns the canonical document list and the selection
// subset. Invariant: the selection never contains an id absent from the
// document list; refreshes and deletes prune it in the same critical
// section that mutates the list.
type DocumentRegistry struct {
	gateway driven.Gateway
	cfg     RegistryConfig

	mu        sync.RWMutex
	docs      []domain.Document
	ids       map[string]struct{}
	selection map[string]struct{}

	// refreshSeq orders overlapping refreshes: a response is applied
	// only if its sequence number is the latest issued.
	refreshSeq uint64
}

// NewDocumentRegistry creates a document registry using the given gateway.
func NewDocumentRegistry(gateway driven.Gateway, cfg RegistryConfig) *DocumentRegistry {
	cfg.applyDefaults()
	return &DocumentRegistry{
		gateway:   gateway,
		cfg:       cfg,
		ids:       make(map[string]struct{}),
		selection: make(map[string]struct{}),
	}
}

// Refresh fetches the full document list and replaces the tracked set
// wholesale, pruning the selection to surviving ids. Responses overtaken
// by a newer refresh are discarded. On failure the prior snapshot is
// retained.
func (r *DocumentRegistry) Refresh(ctx context.Context) ([]domain.Document, error) {
	r.mu.Lock()
	r.refreshSeq++
	seq := r.refreshSeq
	r.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	docs, err := r.gateway.ListDocuments(callCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.refreshSeq {
		logger.Warn("Discarding stale document refresh (seq %d, latest %d)", seq, r.refreshSeq)
		return r.snapshotLocked(), nil
	}

	r.docs = make([]domain.Document, len(docs))
	copy(r.docs, docs)
	r.ids = make(map[string]struct{}, len(docs))
	for _, d := range docs {
		r.ids[d.ID] = struct{}{}
	}
	r.pruneSelectionLocked()

	logger.Debug("Document refresh applied: %d documents", len(docs))
	return r.snapshotLocked(), nil
}

// pruneSelectionLocked drops selected ids no longer in the registry.
func (r *DocumentRegistry) pruneSelectionLocked() {
	for id := range r.selection {
		if _, ok := r.ids[id]; !ok {
			delete(r.selection, id)
		}
	}
}

// Select adds a known document id to the selection. Unknown ids are a
// no-op so a racing caller cannot corrupt the subset invariant.
func (r *DocumentRegistry) Select(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id]; !ok {
		return
	}
	r.selection[id] = struct{}{}
}

// Deselect removes an id from the selection.
func (r *DocumentRegistry) Deselect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.selection, id)
}

// ToggleSelect flips one id's selection state.
func (r *DocumentRegistry) ToggleSelect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, selected := r.selection[id]; selected {
		delete(r.selection, id)
		return
	}
	if _, ok := r.ids[id]; ok {
		r.selection[id] = struct{}{}
	}
}

// SelectAll toggles between everything selected and nothing selected:
// if every document is already in the selection it clears, otherwise it
// selects the full current id set.
func (r *DocumentRegistry) SelectAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.docs) > 0 && len(r.selection) == len(r.docs) {
		r.selection = make(map[string]struct{})
		return
	}
	r.selection = make(map[string]struct{}, len(r.docs))
	for id := range r.ids {
		r.selection[id] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (r *DocumentRegistry) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selection = make(map[string]struct{})
}

// Delete removes a document remotely, then locally. The document and
// any selection entry are removed in one critical section so no reader
// can observe the id selected but absent from the list. On failure
// nothing changes locally.
func (r *DocumentRegistry) Delete(ctx context.Context, id string) error {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	if err := r.gateway.DeleteDocument(callCtx, id); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDeleteFailed, id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.docs {
		if d.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			break
		}
	}
	delete(r.ids, id)
	delete(r.selection, id)

	logger.Info("Document %s deleted", id)
	return nil
}

// Documents returns a snapshot copy of the current document list.
func (r *DocumentRegistry) Documents() []domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *DocumentRegistry) snapshotLocked() []domain.Document {
	docs := make([]domain.Document, len(r.docs))
	copy(docs, r.docs)
	return docs
}

// Selection returns the selected ids in document-list order.
func (r *DocumentRegistry) Selection() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.selection))
	for _, d := range r.docs {
		if _, ok := r.selection[d.ID]; ok {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// IsSelected reports whether an id is currently selected.
func (r *DocumentRegistry) IsSelected(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.selection[id]
	return ok
}
