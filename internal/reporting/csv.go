package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders the per-run metric rows as a CSV string.
func RenderCSV(rows []RunMetricRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("run_id,kind,severity,duration_days,shape,policy,")
	sb.WriteString("depth,ttr_model,ttr,area_of_loss,min_perf,resilience_index,cost_proxy\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%.6f,%d,%s,%s,%.6f,%d,%d,%.6f,%.6f,%.6f,%.6f\n",
			r.RunID,
			r.Kind,
			r.Severity,
			r.DurationDays,
			r.Shape,
			strings.ReplaceAll(r.PolicySummary, " ", "+"),
			r.Depth,
			r.TTRModel,
			r.TTR,
			r.AreaOfLoss,
			r.MinPerf,
			r.ResilienceIndex,
			r.CostProxy,
		))
	}

	return sb.String()
}
