package policy

import (
	"math"
	"testing"

	"resilience-lab/internal/domain"
)

const tol = 1e-12

func TestCompute_NoLevers(t *testing.T) {
	e := Compute(domain.Policy{})
	if e.DepthMult != 1.0 || e.TTRMult != 1.0 || e.CostProxy != 0.0 {
		t.Errorf("neutral policy: got %+v, want identity effects", e)
	}
}

func TestCompute_SafetyStock(t *testing.T) {
	e := Compute(domain.Policy{SafetyStock: 0.5})
	if math.Abs(e.DepthMult-0.7) > tol {
		t.Errorf("DepthMult = %f, want 0.7", e.DepthMult)
	}
	if e.TTRMult != 1.0 {
		t.Errorf("TTRMult = %f, safety stock must not affect recovery time", e.TTRMult)
	}
	if math.Abs(e.CostProxy-0.2) > tol {
		t.Errorf("CostProxy = %f, want 0.2", e.CostProxy)
	}
}

func TestCompute_DualSourcing(t *testing.T) {
	e := Compute(domain.Policy{DualSourcing: true})
	if math.Abs(e.DepthMult-0.75) > tol || math.Abs(e.TTRMult-0.80) > tol || math.Abs(e.CostProxy-0.15) > tol {
		t.Errorf("dual sourcing: got %+v, want (0.75, 0.80, 0.15)", e)
	}
}

func TestCompute_MultiplicativeComposition(t *testing.T) {
	e := Compute(domain.Policy{
		SafetyStock:  0.25,
		Expediting:   true,
		DualSourcing: true,
	})
	// depth: (1 - 0.6*0.25) * 0.75 = 0.85 * 0.75
	if math.Abs(e.DepthMult-0.85*0.75) > tol {
		t.Errorf("DepthMult = %f, want %f", e.DepthMult, 0.85*0.75)
	}
	// ttr: dual 0.80 * expediting 0.75
	if math.Abs(e.TTRMult-0.80*0.75) > tol {
		t.Errorf("TTRMult = %f, want %f", e.TTRMult, 0.80*0.75)
	}
	// cost: 0.4*0.25 + 0.15 + 0.35
	if math.Abs(e.CostProxy-(0.1+0.15+0.35)) > tol {
		t.Errorf("CostProxy = %f, want 0.6", e.CostProxy)
	}
}

func TestCompute_AllLevers(t *testing.T) {
	e := Compute(domain.Policy{
		SafetyStock:  1.0,
		Expediting:   true,
		Overtime:     true,
		DualSourcing: true,
		Rerouting:    true,
	})
	if math.Abs(e.DepthMult-0.4*0.75) > tol {
		t.Errorf("DepthMult = %f, want %f", e.DepthMult, 0.4*0.75)
	}
	if math.Abs(e.TTRMult-0.80*0.90*0.75*0.85) > tol {
		t.Errorf("TTRMult = %f, want %f", e.TTRMult, 0.80*0.90*0.75*0.85)
	}
	if math.Abs(e.CostProxy-(0.4+0.15+0.10+0.35+0.25)) > tol {
		t.Errorf("CostProxy = %f, want 1.25", e.CostProxy)
	}
}

func TestCompute_ClampsOutOfRangeSafetyStock(t *testing.T) {
	// A literal-constructed policy can carry an out-of-range value; the
	// effect model clamps rather than amplifying.
	e := Compute(domain.Policy{SafetyStock: 3.0})
	if math.Abs(e.DepthMult-0.4) > tol {
		t.Errorf("DepthMult = %f, want 0.4 (clamped)", e.DepthMult)
	}
}
