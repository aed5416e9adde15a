package reporting

import "time"

// Report is a policy-comparison report over stored simulation runs.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunCount    int

	// Summary
	Summary Summary

	// Per-run metric rows (sorted by created_at_ms, run_id)
	Rows []RunMetricRow

	// Per-kind aggregate comparison (sorted by kind)
	KindComparison []KindComparisonRow
}

// Summary describes the stored run population.
type Summary struct {
	TotalRuns      int
	Kinds          int
	Shapes         int
	BestRunID      string  // highest resilience index
	BestResilience float64
	MeanResilience float64
}

// RunMetricRow is one run in the comparison table.
type RunMetricRow struct {
	RunID           string
	Kind            string
	Severity        float64
	DurationDays    int
	Shape           string
	PolicySummary   string // compact lever description, e.g. "ss=0.25 exp dual"
	Depth           float64
	TTRModel        int
	TTR             int // -1 when recovery never reached the threshold
	AreaOfLoss      float64
	MinPerf         float64
	ResilienceIndex float64
	CostProxy       float64
}

// KindComparisonRow aggregates runs of one disruption kind.
type KindComparisonRow struct {
	Kind               string
	Runs               int
	MeanResilience     float64
	MeanAreaOfLoss     float64
	WorstMinPerf       float64
	NeverRecoveredRuns int
}
