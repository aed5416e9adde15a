package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Resilience Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Runs: %d | Kinds: %d | Shapes: %d\n\n",
		r.Summary.TotalRuns, r.Summary.Kinds, r.Summary.Shapes))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Runs | %d |\n", r.Summary.TotalRuns))
	sb.WriteString(fmt.Sprintf("| Mean Resilience Index | %.4f |\n", r.Summary.MeanResilience))
	if r.Summary.BestRunID != "" {
		sb.WriteString(fmt.Sprintf("| Best Run | %s (%.4f) |\n",
			shortID(r.Summary.BestRunID), r.Summary.BestResilience))
	}
	sb.WriteString("\n")

	// Per-run metrics
	sb.WriteString("## Runs\n\n")
	if len(r.Rows) == 0 {
		sb.WriteString("No runs stored.\n\n")
	} else {
		sb.WriteString("| Run | Kind | Sev | Shape | Policy | Depth | TTR (model) | TTR | Area of Loss | Min Perf | Resilience | Cost |\n")
		sb.WriteString("|-----|------|-----|-------|--------|-------|-------------|-----|--------------|----------|------------|------|\n")
		for _, row := range r.Rows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %s | %s | %.4f | %d | %s | %.4f | %.4f | %.4f | %.2f |\n",
				shortID(row.RunID),
				row.Kind,
				row.Severity,
				row.Shape,
				row.PolicySummary,
				row.Depth,
				row.TTRModel,
				ttrCell(row.TTR),
				row.AreaOfLoss,
				row.MinPerf,
				row.ResilienceIndex,
				row.CostProxy,
			))
		}
		sb.WriteString("\n")
	}

	// Kind comparison
	if len(r.KindComparison) > 0 {
		sb.WriteString("## Disruption Kind Comparison\n\n")
		sb.WriteString("| Kind | Runs | Mean Resilience | Mean Area of Loss | Worst Min Perf | Never Recovered |\n")
		sb.WriteString("|------|------|-----------------|-------------------|----------------|------------------|\n")
		for _, row := range r.KindComparison {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %d |\n",
				row.Kind, row.Runs, row.MeanResilience, row.MeanAreaOfLoss,
				row.WorstMinPerf, row.NeverRecoveredRuns))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// shortID truncates a run ID for table display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// ttrCell renders the measured TTR, marking never-recovered runs.
func ttrCell(ttr int) string {
	if ttr < 0 {
		return "never"
	}
	return fmt.Sprintf("%d", ttr)
}
