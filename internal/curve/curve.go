// Package curve generates normalized recovery curves: unit performance
// over a time horizon, dropping to an impact level at disruption start and
// interpolating back toward 1.0 along one of four shape families.
package curve

import (
	"math"

	"resilience-lab/internal/domain"
)

// Sigmoid steepness per shape family.
const (
	expDecayK        = 4.0
	logisticK        = 10.0
	delayedReboundK  = 12.0
	maxDelayFraction = 0.9
)

// Generate produces a unit performance curve of length horizon
// (baseline = 1.0 before any impact).
//
// Before start the curve is exactly 1.0. At start it steps down to
// impactLevel (impact is instantaneous, recovery is gradual). Over
// [start, min(horizon-1, start+ttr)] performance is interpolated back
// toward 1.0 by the selected shape. If overshoot > 0, overshoot*x^2 is
// added over the recovery window without clamping, so performance can
// exceed 1.0 during catch-up. After the window the curve holds flat at
// its final recovered value.
//
// start >= horizon yields an all-1.0 curve; a degenerate window of one
// sample or fewer leaves the step function as-is.
func Generate(shape domain.CurveShape, impactLevel float64, ttr, horizon, start, delayDays int, overshoot float64) ([]float64, error) {
	if _, err := domain.ParseCurveShape(string(shape)); err != nil {
		return nil, err
	}

	perf := make([]float64, horizon)
	for i := range perf {
		perf[i] = 1.0
	}
	if start >= horizon {
		return perf, nil
	}

	for i := start; i < horizon; i++ {
		perf[i] = impactLevel
	}

	end := start + ttr
	if end > horizon-1 {
		end = horizon - 1
	}
	n := end - start + 1
	if n <= 1 {
		return perf, nil
	}

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		rec := recoveryAt(shape, impactLevel, ttr, delayDays, x)
		if overshoot > 0 {
			rec += overshoot * x * x
		}
		perf[start+i] = rec
	}
	for i := end + 1; i < horizon; i++ {
		perf[i] = perf[end]
	}
	return perf, nil
}

// recoveryAt evaluates the recovery interpolant at progress x in [0,1].
// Every shape is normalized to hit impactLevel at x=0 and 1.0 at x=1.
func recoveryAt(shape domain.CurveShape, impactLevel float64, ttr, delayDays int, x float64) float64 {
	gap := 1.0 - impactLevel

	switch shape {
	case domain.ShapeLinear:
		return impactLevel + gap*x

	case domain.ShapeExponential:
		return impactLevel + gap*(1.0-math.Exp(-expDecayK*x))/(1.0-math.Exp(-expDecayK))

	case domain.ShapeLogistic:
		return impactLevel + gap*normalizedSigmoid(logisticK, x)

	case domain.ShapeDelayedRebound:
		den := ttr
		if den < 1 {
			den = 1
		}
		delayFrac := float64(delayDays) / float64(den)
		if delayFrac > maxDelayFraction {
			delayFrac = maxDelayFraction
		}
		if x < delayFrac {
			return impactLevel
		}
		rem := 1.0 - delayFrac
		if rem < 1e-9 {
			rem = 1e-9
		}
		xr := (x - delayFrac) / rem
		return impactLevel + gap*normalizedSigmoid(delayedReboundK, xr)
	}
	// Unreachable: shape is validated in Generate.
	return impactLevel
}

// normalizedSigmoid is the logistic sigmoid centered at 0.5 with steepness
// k, endpoint-shifted and rescaled so it maps 0 -> 0 and 1 -> 1 exactly.
func normalizedSigmoid(k, x float64) float64 {
	sig := 1.0 / (1.0 + math.Exp(-k*(x-0.5)))
	sig0 := 1.0 / (1.0 + math.Exp(-k*(0.0-0.5)))
	sig1 := 1.0 / (1.0 + math.Exp(-k*(1.0-0.5)))
	return (sig - sig0) / (sig1 - sig0)
}
