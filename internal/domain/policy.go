package domain

// Policy bundles independent mitigation levers. Immutable; SafetyStock is
// always in [0,1] after construction. The levers are deliberately minimal
// and interpretable; their effect coefficients live in internal/policy.
type Policy struct {
	SafetyStock  float64
	Expediting   bool
	Overtime     bool
	DualSourcing bool
	Rerouting    bool
}

// NewPolicy normalizes a policy. SafetyStock is clamped into [0,1];
// there are no failure modes beyond the clamp.
func NewPolicy(safetyStock float64, expediting, overtime, dualSourcing, rerouting bool) Policy {
	return Policy{
		SafetyStock:  Clip01(safetyStock),
		Expediting:   expediting,
		Overtime:     overtime,
		DualSourcing: dualSourcing,
		Rerouting:    rerouting,
	}
}
