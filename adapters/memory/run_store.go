package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"montyhall/domain/core"
	"montyhall/ports"
)

// RunStore implements ports.RunStorePort with in-memory storage
type RunStore struct {
	runs map[core.RunID]ports.StoredRun
	mu   sync.RWMutex
}

// NewRunStore creates an empty run store
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[core.RunID]ports.StoredRun),
	}
}

// Save stores a completed run, replacing any previous run with the same ID
func (s *RunStore) Save(ctx context.Context, run ports.StoredRun) error {
	if run.RunID == "" {
		return core.NewValidationError("run_id", "cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.RunID] = run
	return nil
}

// Get retrieves a run by ID
func (s *RunStore) Get(ctx context.Context, id core.RunID) (ports.StoredRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return ports.StoredRun{}, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	return run, nil
}

// List returns all stored runs ordered by run ID (UUIDv7, so time-ordered)
func (s *RunStore) List(ctx context.Context) ([]ports.StoredRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]ports.StoredRun, 0, len(s.runs))
	for _, run := range s.runs {
		results = append(results, run)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].RunID < results[j].RunID
	})
	return results, nil
}
