package metrics

import "resilience-lab/internal/domain"

// DefaultNames returns the built-in metric names in their canonical
// reporting order.
func DefaultNames() []string {
	return []string{MetricTTR, MetricAreaOfLoss, MetricMinPerf, MetricResilienceIndex}
}

// Compute resolves each requested metric in the default registry and
// returns name -> per-scenario values. A nil names slice selects the four
// built-ins. The eps parameter is forwarded only to ttr; the remaining
// reducers take no parameters.
func Compute(tr *domain.Trajectory, names []string, params Params) (map[string][]float64, error) {
	return ComputeWith(Default(), tr, names, params)
}

// ComputeWith is Compute against an explicit registry.
func ComputeWith(reg *Registry, tr *domain.Trajectory, names []string, params Params) (map[string][]float64, error) {
	if names == nil {
		names = DefaultNames()
	}
	out := make(map[string][]float64, len(names))
	for _, name := range names {
		fn, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		if name == MetricTTR {
			out[name] = fn(tr, params)
		} else {
			out[name] = fn(tr, Params{})
		}
	}
	return out, nil
}
