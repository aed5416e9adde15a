package domain

import "errors"

// Trajectory construction errors.
var (
	ErrEmptyPerformance  = errors.New("performance must contain at least one value")
	ErrRaggedPerformance = errors.New("batch performance rows must have equal length")
)

// Trajectory is the canonical simulation result: one or many performance
// rows over a shared time axis, plus the baseline they are measured
// against and free-form metadata for traceability.
//
// Rows are stored (N,T); a single-scenario trajectory has N=1 and is
// flagged so callers can distinguish it from a batch of one. Trajectories
// are produced once by the engine and read-only afterwards; WithMeta is
// the only derived-copy operation.
type Trajectory struct {
	rows  [][]float64
	batch bool

	Baseline float64
	Meta     map[string]any
}

// NewTrajectory wraps a single-scenario performance series.
func NewTrajectory(performance []float64, baseline float64, meta map[string]any) (*Trajectory, error) {
	if len(performance) == 0 {
		return nil, ErrEmptyPerformance
	}
	row := make([]float64, len(performance))
	copy(row, performance)
	return &Trajectory{
		rows:     [][]float64{row},
		batch:    false,
		Baseline: baseline,
		Meta:     copyMeta(meta),
	}, nil
}

// NewBatchTrajectory wraps an (N,T) stack of performance rows.
// All rows must be non-empty and of equal length.
func NewBatchTrajectory(performance [][]float64, baseline float64, meta map[string]any) (*Trajectory, error) {
	if len(performance) == 0 || len(performance[0]) == 0 {
		return nil, ErrEmptyPerformance
	}
	t := len(performance[0])
	rows := make([][]float64, len(performance))
	for i, src := range performance {
		if len(src) != t {
			return nil, ErrRaggedPerformance
		}
		row := make([]float64, t)
		copy(row, src)
		rows[i] = row
	}
	return &Trajectory{
		rows:     rows,
		batch:    true,
		Baseline: baseline,
		Meta:     copyMeta(meta),
	}, nil
}

// IsBatch reports whether the trajectory holds multiple scenarios.
func (tr *Trajectory) IsBatch() bool { return tr.batch }

// T is the horizon length (trailing dimension).
func (tr *Trajectory) T() int { return len(tr.rows[0]) }

// N is the scenario count (1 when not a batch).
func (tr *Trajectory) N() int { return len(tr.rows) }

// Row returns the performance series of scenario i.
func (tr *Trajectory) Row(i int) []float64 { return tr.rows[i] }

// Rows returns all performance rows, one per scenario.
func (tr *Trajectory) Rows() [][]float64 { return tr.rows }

// Series returns the performance of a single-scenario trajectory
// (the first row for a batch).
func (tr *Trajectory) Series() []float64 { return tr.rows[0] }

// Loss is the elementwise performance deficit max(0, baseline - perf),
// shaped like the performance rows.
func (tr *Trajectory) Loss() [][]float64 {
	out := make([][]float64, len(tr.rows))
	for i, row := range tr.rows {
		loss := make([]float64, len(row))
		for j, v := range row {
			if d := tr.Baseline - v; d > 0 {
				loss[j] = d
			}
		}
		out[i] = loss
	}
	return out
}

// MinPerformance is the minimum performance per scenario.
func (tr *Trajectory) MinPerformance() []float64 {
	out := make([]float64, len(tr.rows))
	for i, row := range tr.rows {
		m := row[0]
		for _, v := range row[1:] {
			if v < m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

// ArgMin is the time index of minimum performance per scenario
// (first occurrence on ties).
func (tr *Trajectory) ArgMin() []int {
	out := make([]int, len(tr.rows))
	for i, row := range tr.rows {
		idx := 0
		for j, v := range row {
			if v < row[idx] {
				idx = j
			}
		}
		out[i] = idx
	}
	return out
}

// WithMeta returns a new trajectory with updates merged into the metadata.
// The receiver is not mutated.
func (tr *Trajectory) WithMeta(updates map[string]any) *Trajectory {
	meta := copyMeta(tr.Meta)
	if meta == nil {
		meta = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		meta[k] = v
	}
	return &Trajectory{
		rows:     tr.rows,
		batch:    tr.batch,
		Baseline: tr.Baseline,
		Meta:     meta,
	}
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
