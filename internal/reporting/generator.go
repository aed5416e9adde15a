// Package reporting builds policy-comparison reports from stored
// simulation runs and renders them to markdown and CSV.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/storage"
)

// Generator builds reports from a run store.
type Generator struct {
	runStore storage.RunStore
}

// NewGenerator creates a report generator.
func NewGenerator(runStore storage.RunStore) *Generator {
	return &Generator{runStore: runStore}
}

// Generate loads all stored runs and builds the comparison report.
// An empty store yields an empty (but valid) report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	runs, err := g.runStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		RunCount:    len(runs),
		Rows:        make([]RunMetricRow, 0, len(runs)),
	}

	kinds := make(map[string][]*domain.SimulationRun)
	shapes := make(map[string]struct{})
	sumResilience := 0.0

	for _, r := range runs {
		report.Rows = append(report.Rows, RunMetricRow{
			RunID:           r.RunID,
			Kind:            string(r.Kind),
			Severity:        r.Severity,
			DurationDays:    r.DurationDays,
			Shape:           string(r.Shape),
			PolicySummary:   policySummary(r),
			Depth:           r.Depth,
			TTRModel:        r.TTRModel,
			TTR:             r.TTR,
			AreaOfLoss:      r.AreaOfLoss,
			MinPerf:         r.MinPerf,
			ResilienceIndex: r.ResilienceIndex,
			CostProxy:       r.CostProxy,
		})

		kinds[string(r.Kind)] = append(kinds[string(r.Kind)], r)
		shapes[string(r.Shape)] = struct{}{}
		sumResilience += r.ResilienceIndex

		if report.Summary.BestRunID == "" || r.ResilienceIndex > report.Summary.BestResilience {
			report.Summary.BestRunID = r.RunID
			report.Summary.BestResilience = r.ResilienceIndex
		}
	}

	report.Summary.TotalRuns = len(runs)
	report.Summary.Kinds = len(kinds)
	report.Summary.Shapes = len(shapes)
	if len(runs) > 0 {
		report.Summary.MeanResilience = sumResilience / float64(len(runs))
	}

	report.KindComparison = compareKinds(kinds)
	return report, nil
}

// compareKinds aggregates runs per disruption kind, sorted by kind for
// deterministic output.
func compareKinds(kinds map[string][]*domain.SimulationRun) []KindComparisonRow {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([]KindComparisonRow, 0, len(names))
	for _, name := range names {
		runs := kinds[name]
		row := KindComparisonRow{
			Kind:         name,
			Runs:         len(runs),
			WorstMinPerf: runs[0].MinPerf,
		}
		for _, r := range runs {
			row.MeanResilience += r.ResilienceIndex
			row.MeanAreaOfLoss += r.AreaOfLoss
			if r.MinPerf < row.WorstMinPerf {
				row.WorstMinPerf = r.MinPerf
			}
			if r.TTR < 0 {
				row.NeverRecoveredRuns++
			}
		}
		row.MeanResilience /= float64(len(runs))
		row.MeanAreaOfLoss /= float64(len(runs))
		rows = append(rows, row)
	}
	return rows
}

// policySummary renders the active levers compactly, e.g. "ss=0.25 exp dual".
func policySummary(r *domain.SimulationRun) string {
	var parts []string
	if r.SafetyStock > 0 {
		parts = append(parts, fmt.Sprintf("ss=%.2f", r.SafetyStock))
	}
	if r.Expediting {
		parts = append(parts, "exp")
	}
	if r.Overtime {
		parts = append(parts, "ot")
	}
	if r.DualSourcing {
		parts = append(parts, "dual")
	}
	if r.Rerouting {
		parts = append(parts, "rte")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
