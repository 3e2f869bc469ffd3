package cached

import (
	"sync"

	"github.com/google/uuid"
)

// writeTracker lets a cache fill detect writes to the same id that landed
// while it was reading storage. Only ids with reads in flight are tracked.
type writeTracker struct {
	mu       sync.Mutex
	inflight map[uuid.UUID]*readState
}

type readState struct {
	readers int
	gen     uint64
}

// begin registers a read of id and returns the generation it started at.
func (w *writeTracker) begin(id uuid.UUID) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inflight == nil {
		w.inflight = make(map[uuid.UUID]*readState)
	}
	s, ok := w.inflight[id]
	if !ok {
		s = &readState{}
		w.inflight[id] = s
	}
	s.readers++
	return s.gen
}

// written records a write to id.
func (w *writeTracker) written(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.inflight[id]; ok {
		s.gen++
	}
}

// end finishes a read started at gen and reports whether id was written since.
func (w *writeTracker) end(id uuid.UUID, gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.inflight[id]
	if !ok {
		return false
	}
	stale := s.gen != gen
	s.readers--
	if s.readers == 0 {
		delete(w.inflight, id)
	}
	return stale
}
