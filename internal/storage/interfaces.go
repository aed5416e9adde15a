package storage

import (
	"context"

	"resilience-lab/internal/domain"
)

// RunStore provides access to simulation_runs storage.
type RunStore interface {
	// Insert adds a new run. Returns ErrDuplicateKey if run_id exists
	// (runs are content-addressed, so a duplicate means the identical
	// scenario was already simulated and persisted).
	Insert(ctx context.Context, r *domain.SimulationRun) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.SimulationRun, error)

	// List retrieves all runs ordered by created_at_ms ASC, run_id ASC.
	List(ctx context.Context) ([]*domain.SimulationRun, error)

	// GetByKind retrieves all runs for a disruption kind, same ordering as List.
	GetByKind(ctx context.Context, kind domain.DisruptionKind) ([]*domain.SimulationRun, error)
}

// TrajectoryPointStore provides access to trajectory_points storage.
type TrajectoryPointStore interface {
	// InsertBulk adds all points of a run. Fails the entire batch with
	// ErrDuplicateKey if any points already exist for the run.
	InsertBulk(ctx context.Context, points []*domain.TrajectoryPoint) error

	// GetByRunID retrieves all points for a run, ordered by day ASC.
	// Returns an empty slice when the run has no persisted points.
	GetByRunID(ctx context.Context, runID string) ([]*domain.TrajectoryPoint, error)
}
