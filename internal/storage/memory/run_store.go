package memory

import (
	"context"
	"sort"
	"sync"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/storage"
)

// RunStore is an in-memory implementation of storage.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SimulationRun // keyed by run_id
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		data: make(map[string]*domain.SimulationRun),
	}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) Insert(_ context.Context, r *domain.SimulationRun) error {
	if r == nil || r.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[r.RunID] = &copy
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunStore) GetByID(_ context.Context, runID string) (*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

// List retrieves all runs ordered by created_at_ms ASC, run_id ASC.
func (s *RunStore) List(_ context.Context) ([]*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.SimulationRun, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		out = append(out, &copy)
	}
	sortRuns(out)
	return out, nil
}

// GetByKind retrieves all runs for a disruption kind, same ordering as List.
func (s *RunStore) GetByKind(_ context.Context, kind domain.DisruptionKind) ([]*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.SimulationRun
	for _, r := range s.data {
		if r.Kind == kind {
			copy := *r
			out = append(out, &copy)
		}
	}
	sortRuns(out)
	return out, nil
}

func sortRuns(runs []*domain.SimulationRun) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtMs != runs[j].CreatedAtMs {
			return runs[i].CreatedAtMs < runs[j].CreatedAtMs
		}
		return runs[i].RunID < runs[j].RunID
	})
}
