package postgres

import (
	"context"
	"fmt"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/storage"
)

// RunStore implements storage.RunStore using PostgreSQL.
type RunStore struct {
	pool *Pool
}

// NewRunStore creates a new RunStore.
func NewRunStore(pool *Pool) *RunStore {
	return &RunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

const runColumns = `
	run_id, created_at_ms,
	kind, severity, duration_days, start_day,
	safety_stock, expediting, overtime, dual_sourcing, rerouting,
	shape, horizon_days, baseline,
	depth, ttr_model, cost_proxy,
	ttr, area_of_loss, min_perf, resilience_index
`

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) Insert(ctx context.Context, r *domain.SimulationRun) error {
	query := `
		INSERT INTO simulation_runs (` + runColumns + `) VALUES (
			$1, $2,
			$3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14,
			$15, $16, $17,
			$18, $19, $20, $21
		)
	`

	_, err := s.pool.Exec(ctx, query,
		r.RunID, r.CreatedAtMs,
		string(r.Kind), r.Severity, r.DurationDays, r.StartDay,
		r.SafetyStock, r.Expediting, r.Overtime, r.DualSourcing, r.Rerouting,
		string(r.Shape), r.HorizonDays, r.Baseline,
		r.Depth, r.TTRModel, r.CostProxy,
		r.TTR, r.AreaOfLoss, r.MinPerf, r.ResilienceIndex,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunStore) GetByID(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	query := `SELECT ` + runColumns + ` FROM simulation_runs WHERE run_id = $1`

	row := s.pool.QueryRow(ctx, query, runID)
	r, err := scanRun(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get simulation run: %w", err)
	}
	return r, nil
}

// List retrieves all runs ordered by created_at_ms ASC, run_id ASC.
func (s *RunStore) List(ctx context.Context) ([]*domain.SimulationRun, error) {
	query := `SELECT ` + runColumns + ` FROM simulation_runs ORDER BY created_at_ms ASC, run_id ASC`
	return s.queryRuns(ctx, query)
}

// GetByKind retrieves all runs for a disruption kind, same ordering as List.
func (s *RunStore) GetByKind(ctx context.Context, kind domain.DisruptionKind) ([]*domain.SimulationRun, error) {
	query := `SELECT ` + runColumns + ` FROM simulation_runs WHERE kind = $1 ORDER BY created_at_ms ASC, run_id ASC`
	return s.queryRuns(ctx, query, string(kind))
}

func (s *RunStore) queryRuns(ctx context.Context, query string, args ...any) ([]*domain.SimulationRun, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query simulation runs: %w", err)
	}
	defer rows.Close()

	var out []*domain.SimulationRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simulation run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate simulation runs: %w", err)
	}
	return out, nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.SimulationRun, error) {
	var r domain.SimulationRun
	var kind, shape string
	err := row.Scan(
		&r.RunID, &r.CreatedAtMs,
		&kind, &r.Severity, &r.DurationDays, &r.StartDay,
		&r.SafetyStock, &r.Expediting, &r.Overtime, &r.DualSourcing, &r.Rerouting,
		&shape, &r.HorizonDays, &r.Baseline,
		&r.Depth, &r.TTRModel, &r.CostProxy,
		&r.TTR, &r.AreaOfLoss, &r.MinPerf, &r.ResilienceIndex,
	)
	if err != nil {
		return nil, err
	}
	r.Kind = domain.DisruptionKind(kind)
	r.Shape = domain.CurveShape(shape)
	return &r, nil
}
