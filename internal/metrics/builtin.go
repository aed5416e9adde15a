package metrics

import "resilience-lab/internal/domain"

// Built-in metric names.
const (
	MetricTTR             = "ttr"
	MetricAreaOfLoss      = "area_of_loss"
	MetricMinPerf         = "min_perf"
	MetricResilienceIndex = "resilience_index"
)

// DefaultEps is the recovery threshold tolerance: a scenario counts as
// recovered once performance reaches baseline*(1-eps).
const DefaultEps = 0.02

// worstCaseFloor guards the resilience-index division: below this the
// scenario never lost anything and the index is defined as 1.0.
const worstCaseFloor = 1e-9

// TimeToRecovery finds, per scenario, the first time index at or after the
// minimum-performance point where performance >= baseline*(1-eps).
// Returns the absolute index, or -1 if the threshold is never reached
// within the horizon. Values are integral indices stored as float64.
func TimeToRecovery(tr *domain.Trajectory, params Params) []float64 {
	eps := params.Eps
	if eps == 0 {
		eps = DefaultEps
	}
	thr := tr.Baseline * (1.0 - eps)

	argmin := tr.ArgMin()
	out := make([]float64, tr.N())
	for i, row := range tr.Rows() {
		out[i] = -1
		for j := argmin[i]; j < len(row); j++ {
			if row[j] >= thr {
				out[i] = float64(j)
				break
			}
		}
	}
	return out
}

// AreaOfLoss sums the elementwise loss max(0, baseline-perf) over the time
// axis: a discrete integral of the performance deficit, per scenario.
func AreaOfLoss(tr *domain.Trajectory, _ Params) []float64 {
	out := make([]float64, tr.N())
	for i, row := range tr.Loss() {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		out[i] = sum
	}
	return out
}

// MinPerf is the minimum performance over the time axis, per scenario.
func MinPerf(tr *domain.Trajectory, _ Params) []float64 {
	return tr.MinPerformance()
}

// ResilienceIndex is 1 - area_of_loss/worst_case_loss clipped to [0,1],
// where worst_case_loss = (baseline - min_perf) * T is the loss of staying
// at the worst point for the whole horizon. Defined as 1.0 when the worst
// case is numerically zero (no loss ever occurred). Overshoot above
// baseline is never rewarded beyond "no loss"; the clip is a modeling
// choice, not a bug.
func ResilienceIndex(tr *domain.Trajectory, _ Params) []float64 {
	area := AreaOfLoss(tr, Params{})
	minPerf := tr.MinPerformance()
	t := float64(tr.T())

	out := make([]float64, tr.N())
	for i := range out {
		worst := (tr.Baseline - minPerf[i]) * t
		if worst > worstCaseFloor {
			out[i] = domain.Clip01(1.0 - area[i]/worst)
		} else {
			out[i] = 1.0
		}
	}
	return out
}
