package metrics

import (
	"errors"
	"math"
	"testing"

	"resilience-lab/internal/domain"
)

const tol = 1e-9

func single(t *testing.T, perf []float64) *domain.Trajectory {
	t.Helper()
	tr, err := domain.NewTrajectory(perf, 1.0, nil)
	if err != nil {
		t.Fatalf("NewTrajectory failed: %v", err)
	}
	return tr
}

func TestTimeToRecovery_Single(t *testing.T) {
	// min at index 2, back above 0.98 at index 5
	tr := single(t, []float64{1.0, 0.7, 0.4, 0.6, 0.9, 0.99, 1.0})
	got := TimeToRecovery(tr, Params{})
	if got[0] != 5 {
		t.Errorf("ttr = %v, want 5", got[0])
	}
}

func TestTimeToRecovery_NeverRecovers(t *testing.T) {
	tr := single(t, []float64{1.0, 0.5, 0.6, 0.7, 0.7})
	got := TimeToRecovery(tr, Params{})
	if got[0] != -1 {
		t.Errorf("ttr = %v, want -1 when threshold never reached", got[0])
	}
}

func TestTimeToRecovery_EpsWidensThreshold(t *testing.T) {
	tr := single(t, []float64{1.0, 0.5, 0.91, 0.96, 1.0})
	if got := TimeToRecovery(tr, Params{Eps: 0.1}); got[0] != 2 {
		t.Errorf("ttr with eps=0.1 = %v, want 2", got[0])
	}
	if got := TimeToRecovery(tr, Params{Eps: 0.01}); got[0] != 4 {
		t.Errorf("ttr with eps=0.01 = %v, want 4", got[0])
	}
}

func TestTimeToRecovery_BatchIndependentRows(t *testing.T) {
	tr, err := domain.NewBatchTrajectory([][]float64{
		{1.0, 0.4, 0.99, 1.0},
		{1.0, 0.4, 0.5, 0.6},
	}, 1.0, nil)
	if err != nil {
		t.Fatalf("NewBatchTrajectory failed: %v", err)
	}
	got := TimeToRecovery(tr, Params{})
	if got[0] != 2 || got[1] != -1 {
		t.Errorf("batch ttr = %v, want [2 -1]", got)
	}
}

func TestAreaOfLoss(t *testing.T) {
	tr := single(t, []float64{1.0, 0.6, 0.8, 1.1})
	got := AreaOfLoss(tr, Params{})
	// 0 + 0.4 + 0.2 + 0 (overshoot contributes nothing)
	if math.Abs(got[0]-0.6) > tol {
		t.Errorf("area_of_loss = %f, want 0.6", got[0])
	}
}

func TestMinPerf(t *testing.T) {
	tr := single(t, []float64{1.0, 0.45, 0.8})
	if got := MinPerf(tr, Params{}); got[0] != 0.45 {
		t.Errorf("min_perf = %v, want 0.45", got)
	}
}

func TestResilienceIndex_NoLossIsOne(t *testing.T) {
	tr := single(t, []float64{1.0, 1.0, 1.0})
	if got := ResilienceIndex(tr, Params{}); got[0] != 1.0 {
		t.Errorf("resilience_index = %v, want 1.0 for flat baseline", got)
	}
	// Pure overshoot counts as no loss as well.
	tr = single(t, []float64{1.0, 1.2, 1.1})
	if got := ResilienceIndex(tr, Params{}); got[0] != 1.0 {
		t.Errorf("resilience_index = %v, want 1.0 with overshoot only", got)
	}
}

func TestResilienceIndex_WorstCaseIsZero(t *testing.T) {
	// Drops to the minimum immediately and stays: area equals worst case.
	tr := single(t, []float64{0.5, 0.5, 0.5, 0.5})
	got := ResilienceIndex(tr, Params{})
	if math.Abs(got[0]) > tol {
		t.Errorf("resilience_index = %f, want 0.0 for never-recovering floor", got[0])
	}
}

func TestResilienceIndex_InUnitInterval(t *testing.T) {
	cases := [][]float64{
		{1.0, 0.2, 0.6, 1.0},
		{1.0, 0.9, 0.95, 1.05},
		{0.8, 0.7, 0.9, 1.0},
	}
	for _, perf := range cases {
		got := ResilienceIndex(single(t, perf), Params{})
		if got[0] < 0 || got[0] > 1 {
			t.Errorf("resilience_index(%v) = %f, outside [0,1]", perf, got[0])
		}
	}
}

func TestRegistry_DuplicateAndUnknown(t *testing.T) {
	reg := NewRegistry()
	noop := func(tr *domain.Trajectory, _ Params) []float64 { return make([]float64, tr.N()) }

	if err := reg.Register("custom", noop); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register("custom", noop); !errors.Is(err, ErrDuplicateMetric) {
		t.Errorf("expected ErrDuplicateMetric, got %v", err)
	}
	if _, err := reg.Lookup("missing"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	for _, name := range DefaultNames() {
		if _, err := Default().Lookup(name); err != nil {
			t.Errorf("builtin %q not registered: %v", name, err)
		}
	}
}

func TestCompute_DefaultNames(t *testing.T) {
	tr := single(t, []float64{1.0, 0.5, 0.8, 1.0})
	out, err := Compute(tr, nil, Params{})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d metrics, want 4", len(out))
	}
	for _, name := range []string{MetricTTR, MetricAreaOfLoss, MetricMinPerf, MetricResilienceIndex} {
		values, ok := out[name]
		if !ok {
			t.Errorf("missing metric %q", name)
			continue
		}
		if len(values) != 1 {
			t.Errorf("metric %q has %d values, want 1", name, len(values))
		}
	}
}

func TestCompute_UnknownName(t *testing.T) {
	tr := single(t, []float64{1.0, 0.5})
	_, err := Compute(tr, []string{"ttr", "sharpe"}, Params{})
	if !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestCompute_BatchValuesPerScenario(t *testing.T) {
	tr, err := domain.NewBatchTrajectory([][]float64{
		{1.0, 0.5, 1.0},
		{1.0, 0.8, 1.0},
	}, 1.0, nil)
	if err != nil {
		t.Fatalf("NewBatchTrajectory failed: %v", err)
	}
	out, err := Compute(tr, nil, Params{})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	for name, values := range out {
		if len(values) != 2 {
			t.Errorf("metric %q has %d values, want 2", name, len(values))
		}
	}
	if out[MetricMinPerf][0] != 0.5 || out[MetricMinPerf][1] != 0.8 {
		t.Errorf("min_perf rows = %v, want index-preserving [0.5 0.8]", out[MetricMinPerf])
	}
}
