package memory

import (
	"context"
	"sort"
	"sync"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/storage"
)

// TrajectoryPointStore is an in-memory implementation of
// storage.TrajectoryPointStore.
type TrajectoryPointStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.TrajectoryPoint // keyed by run_id
}

// NewTrajectoryPointStore creates a new in-memory trajectory point store.
func NewTrajectoryPointStore() *TrajectoryPointStore {
	return &TrajectoryPointStore{
		data: make(map[string][]*domain.TrajectoryPoint),
	}
}

// Compile-time interface check.
var _ storage.TrajectoryPointStore = (*TrajectoryPointStore)(nil)

// InsertBulk adds all points of a run. Fails the entire batch with
// ErrDuplicateKey if any points already exist for the run.
func (s *TrajectoryPointStore) InsertBulk(_ context.Context, points []*domain.TrajectoryPoint) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if p == nil || p.RunID == "" || p.Day < 0 {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range points {
		if _, exists := s.data[p.RunID]; exists {
			return storage.ErrDuplicateKey
		}
	}

	// Group after the duplicate check so a failed batch stores nothing.
	grouped := make(map[string][]*domain.TrajectoryPoint)
	for _, p := range points {
		copy := *p
		grouped[p.RunID] = append(grouped[p.RunID], &copy)
	}
	for runID, pts := range grouped {
		sort.Slice(pts, func(i, j int) bool { return pts[i].Day < pts[j].Day })
		s.data[runID] = pts
	}
	return nil
}

// GetByRunID retrieves all points for a run, ordered by day ASC.
func (s *TrajectoryPointStore) GetByRunID(_ context.Context, runID string) ([]*domain.TrajectoryPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pts := s.data[runID]
	out := make([]*domain.TrajectoryPoint, len(pts))
	for i, p := range pts {
		copy := *p
		out[i] = &copy
	}
	return out, nil
}
