// Package engine turns a (disruption, policy) scenario into a performance
// trajectory: it resolves policy effects, derives the modeled impact depth
// and recovery time, and delegates curve generation to internal/curve.
package engine

import (
	"errors"
	"math"

	"resilience-lab/internal/curve"
	"resilience-lab/internal/domain"
	"resilience-lab/internal/policy"
)

// Simulation errors.
var (
	ErrInvalidHorizon   = errors.New("horizon_days must be > 0")
	ErrEmptyBatch       = errors.New("disruptions and policies must be non-empty")
	ErrBatchLenMismatch = errors.New("provide equal lengths or one side of length 1 for broadcasting")
)

// Default simulation parameters.
const (
	DefaultHorizonDays = 60
	DefaultBaseline    = 1.0

	overtimeOvershoot = 0.05
	delayFactor       = 0.3
	minBaseTTR        = 3
	minResolvedTTR    = 2
)

// Options configure a simulation. HorizonDays must be positive; a zero
// Baseline means DefaultBaseline and an empty Shape means logistic.
type Options struct {
	HorizonDays int
	Baseline    float64
	Shape       domain.CurveShape
}

// DefaultOptions returns the standard 60-day logistic simulation.
func DefaultOptions() Options {
	return Options{
		HorizonDays: DefaultHorizonDays,
		Baseline:    DefaultBaseline,
		Shape:       domain.ShapeLogistic,
	}
}

func (o Options) normalized() Options {
	if o.Baseline == 0 {
		o.Baseline = DefaultBaseline
	}
	if o.Shape == "" {
		o.Shape = domain.ShapeLogistic
	}
	return o
}

// Resolved holds the model quantities derived for one scenario.
type Resolved struct {
	Depth     float64
	TTR       int
	Overshoot float64
	DelayDays int
	CostProxy float64
}

// Resolve derives the modeled depth, recovery time, overshoot and rebound
// delay for a scenario. Depth is clip01(severity * depth_mult); the base
// recovery time grows with both duration and severity and is floored at 3
// days before policy scaling and at 2 after.
func Resolve(d domain.Disruption, p domain.Policy, shape domain.CurveShape) Resolved {
	eff := policy.Compute(p)

	depth := domain.Clip01(domain.Clip01(d.Severity) * eff.DepthMult)

	baseTTR := int(math.Round(float64(d.DurationDays) * (1.2 + 1.6*d.Severity)))
	if baseTTR < minBaseTTR {
		baseTTR = minBaseTTR
	}
	ttr := int(math.Round(float64(baseTTR) * eff.TTRMult))
	if ttr < minResolvedTTR {
		ttr = minResolvedTTR
	}

	overshoot := 0.0
	if p.Overtime {
		overshoot = overtimeOvershoot
	}
	delayDays := 0
	if shape == domain.ShapeDelayedRebound {
		delayDays = int(math.Round(delayFactor * float64(d.DurationDays)))
	}

	return Resolved{
		Depth:     depth,
		TTR:       ttr,
		Overshoot: overshoot,
		DelayDays: delayDays,
		CostProxy: eff.CostProxy,
	}
}

// Simulate produces the trajectory of a single scenario. The trajectory
// metadata records the full disruption, policy, shape and resolved model
// quantities for traceability.
func Simulate(d domain.Disruption, p domain.Policy, opts Options) (*domain.Trajectory, error) {
	opts = opts.normalized()
	if opts.HorizonDays <= 0 {
		return nil, ErrInvalidHorizon
	}

	res := Resolve(d, p, opts.Shape)

	unit, err := curve.Generate(
		opts.Shape,
		1.0-res.Depth,
		res.TTR,
		opts.HorizonDays,
		d.StartDay,
		res.DelayDays,
		res.Overshoot,
	)
	if err != nil {
		return nil, err
	}

	perf := make([]float64, len(unit))
	for i, v := range unit {
		perf[i] = v * opts.Baseline
	}

	meta := map[string]any{
		"disruption":  d,
		"policy":      p,
		"curve_shape": opts.Shape,
		"cost_proxy":  res.CostProxy,
		"depth":       res.Depth,
		"ttr_model":   res.TTR,
	}
	return domain.NewTrajectory(perf, opts.Baseline, meta)
}

// SimulateBatch runs one scenario per (disruption, policy) pair and stacks
// the rows into an (N,T) trajectory with input order preserved. A length-1
// side broadcasts against the other; otherwise lengths must match. Batch
// metadata records only n, baseline and shape; per-scenario detail stays
// with the caller's input slices.
func SimulateBatch(disruptions []domain.Disruption, policies []domain.Policy, opts Options) (*domain.Trajectory, error) {
	opts = opts.normalized()
	if opts.HorizonDays <= 0 {
		return nil, ErrInvalidHorizon
	}

	disruptions, policies, err := Broadcast(disruptions, policies)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(disruptions))
	for i := range disruptions {
		tr, err := Simulate(disruptions[i], policies[i], opts)
		if err != nil {
			return nil, err
		}
		rows[i] = tr.Series()
	}

	meta := map[string]any{
		"n":           len(rows),
		"baseline":    opts.Baseline,
		"curve_shape": opts.Shape,
	}
	return domain.NewBatchTrajectory(rows, opts.Baseline, meta)
}

// Broadcast pairs the two scenario sides: equal lengths pass through, a
// length-1 side is repeated to match the other, anything else is an error.
func Broadcast(disruptions []domain.Disruption, policies []domain.Policy) ([]domain.Disruption, []domain.Policy, error) {
	if len(disruptions) == 0 || len(policies) == 0 {
		return nil, nil, ErrEmptyBatch
	}
	switch {
	case len(disruptions) == len(policies):
	case len(disruptions) == 1:
		repeated := make([]domain.Disruption, len(policies))
		for i := range repeated {
			repeated[i] = disruptions[0]
		}
		disruptions = repeated
	case len(policies) == 1:
		repeated := make([]domain.Policy, len(disruptions))
		for i := range repeated {
			repeated[i] = policies[0]
		}
		policies = repeated
	default:
		return nil, nil, ErrBatchLenMismatch
	}
	return disruptions, policies, nil
}
