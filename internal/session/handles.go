package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// HandleCache maps record ids to ephemeral display handles: files holding
// the record's JPEG that the rendering layer can point at directly.
//
// Handles are process-local and never persisted. The cache is bounded by
// construction: Prune drops every handle whose record left the display set,
// and Revoke removes a deleted record's handle immediately.
type HandleCache struct {
	dir string

	mu    sync.Mutex
	paths map[string]string
}

// NewHandleCache creates a cache writing handle files under dir.
func NewHandleCache(dir string) *HandleCache {
	return &HandleCache{
		dir:   dir,
		paths: make(map[string]string),
	}
}

// Acquire returns the display handle for a record, writing the file on
// first use. Repeat calls for the same id return the same handle.
func (h *HandleCache) Acquire(id string, jpeg []byte) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if path, ok := h.paths[id]; ok {
		return path, nil
	}

	path := filepath.Join(h.dir, id+".jpg")
	if err := os.WriteFile(path, jpeg, 0o600); err != nil {
		return "", fmt.Errorf("write display handle: %w", err)
	}

	h.paths[id] = path
	return path, nil
}

// Prune revokes every handle whose id is not in the displayed set.
// Called after each recompute.
func (h *HandleCache) Prune(displayed map[string]bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, path := range h.paths {
		if !displayed[id] {
			os.Remove(path)
			delete(h.paths, id)
		}
	}
}

// Revoke removes the handle for a single id, if present.
func (h *HandleCache) Revoke(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if path, ok := h.paths[id]; ok {
		os.Remove(path)
		delete(h.paths, id)
	}
}

// Clear revokes every handle. Called on shutdown.
func (h *HandleCache) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, path := range h.paths {
		os.Remove(path)
		delete(h.paths, id)
	}
}

// Len returns the number of live handles.
func (h *HandleCache) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.paths)
}
