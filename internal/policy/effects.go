// Package policy maps mitigation policies to their modeled effects on
// disruption depth, recovery time, and an interpretable cost proxy.
package policy

import "resilience-lab/internal/domain"

// Fixed lever coefficients (v0.1). Interpretable and stable: each lever
// scales depth and/or recovery time multiplicatively and adds to the cost
// proxy, so composition is order-independent.
const (
	safetyStockDepthFactor = 0.6
	safetyStockCostFactor  = 0.4

	dualSourcingDepthMult = 0.75
	dualSourcingTTRMult   = 0.80
	dualSourcingCost      = 0.15

	reroutingTTRMult = 0.90
	reroutingCost    = 0.10

	expeditingTTRMult = 0.75
	expeditingCost    = 0.35

	overtimeTTRMult = 0.85
	overtimeCost    = 0.25
)

// Effects are the resolved policy multipliers. DepthMult scales how deep
// the impact is, TTRMult scales how long recovery takes, and CostProxy
// accumulates an additive cost indicator that is reported but never enters
// the curve math.
type Effects struct {
	DepthMult float64
	TTRMult   float64
	CostProxy float64
}

// Compute resolves a policy into its effect multipliers.
func Compute(p domain.Policy) Effects {
	e := Effects{DepthMult: 1.0, TTRMult: 1.0}

	if ss := domain.Clip01(p.SafetyStock); ss > 0 {
		e.DepthMult *= 1.0 - safetyStockDepthFactor*ss
		e.CostProxy += safetyStockCostFactor * ss
	}
	if p.DualSourcing {
		e.DepthMult *= dualSourcingDepthMult
		e.TTRMult *= dualSourcingTTRMult
		e.CostProxy += dualSourcingCost
	}
	if p.Rerouting {
		e.TTRMult *= reroutingTTRMult
		e.CostProxy += reroutingCost
	}
	if p.Expediting {
		e.TTRMult *= expeditingTTRMult
		e.CostProxy += expeditingCost
	}
	if p.Overtime {
		e.TTRMult *= overtimeTTRMult
		e.CostProxy += overtimeCost
	}
	return e
}
