package clickhouse

import (
	"context"
	"fmt"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/storage"
)

// TrajectoryPointStore implements storage.TrajectoryPointStore using ClickHouse.
type TrajectoryPointStore struct {
	conn *Conn
}

// NewTrajectoryPointStore creates a new TrajectoryPointStore.
func NewTrajectoryPointStore(conn *Conn) *TrajectoryPointStore {
	return &TrajectoryPointStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TrajectoryPointStore = (*TrajectoryPointStore)(nil)

// InsertBulk adds all points of a run. Fails the entire batch with
// ErrDuplicateKey if any points already exist for one of the batch's runs.
func (s *TrajectoryPointStore) InsertBulk(ctx context.Context, points []*domain.TrajectoryPoint) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if p == nil || p.RunID == "" || p.Day < 0 {
			return storage.ErrInvalidInput
		}
	}

	// Check for existing rows per run (trajectories are written whole,
	// so any existing point means the run was already persisted).
	seen := make(map[string]struct{})
	for _, p := range points {
		if _, ok := seen[p.RunID]; ok {
			continue
		}
		seen[p.RunID] = struct{}{}

		exists, err := s.runExists(ctx, p.RunID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO trajectory_points (
			run_id, day, performance, loss
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(p.RunID, uint32(p.Day), p.Performance, p.Loss)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all points for a run, ordered by day ASC.
func (s *TrajectoryPointStore) GetByRunID(ctx context.Context, runID string) ([]*domain.TrajectoryPoint, error) {
	query := `
		SELECT run_id, day, performance, loss
		FROM trajectory_points
		WHERE run_id = ?
		ORDER BY day ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query trajectory points: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.TrajectoryPoint, 0)
	for rows.Next() {
		var p domain.TrajectoryPoint
		var day uint32
		if err := rows.Scan(&p.RunID, &day, &p.Performance, &p.Loss); err != nil {
			return nil, fmt.Errorf("scan trajectory point: %w", err)
		}
		p.Day = int(day)
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trajectory points: %w", err)
	}
	return out, nil
}

func (s *TrajectoryPointStore) runExists(ctx context.Context, runID string) (bool, error) {
	var count uint64
	row := s.conn.QueryRow(ctx, `SELECT count() FROM trajectory_points WHERE run_id = ?`, runID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
