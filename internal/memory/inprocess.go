package memory

import (
	"context"
	"sync"
)

// InProcessStore keeps conversation history in a process-wide map. Suitable
// for single-process deployments; use SQLiteStore when several processes
// must share sessions.
type InProcessStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
	maxTurns int
}

// NewInProcessStore creates an in-memory store capping each session at
// maxTurns entries.
func NewInProcessStore(maxTurns int) *InProcessStore {
	if maxTurns < 1 {
		maxTurns = 1
	}
	return &InProcessStore{
		sessions: make(map[string][]Turn),
		maxTurns: maxTurns,
	}
}

func (s *InProcessStore) History(_ context.Context, sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *InProcessStore) Append(_ context.Context, sessionID string, turns ...Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(s.sessions[sessionID], turns...)
	if len(updated) > s.maxTurns {
		updated = updated[len(updated)-s.maxTurns:]
	}
	s.sessions[sessionID] = updated
	return nil
}
