// Package metrics reduces trajectories into scalar resilience indicators.
// Reducers are looked up by name in a registry; the four built-ins are
// registered once at package init.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"resilience-lab/internal/domain"
)

// Registry errors.
var (
	ErrDuplicateMetric = errors.New("metric already registered")
	ErrUnknownMetric   = errors.New("metric not registered")
)

// Params carries optional reducer parameters. Eps is the recovery
// threshold tolerance and is consumed by the ttr reducer only; zero means
// the default (0.02).
type Params struct {
	Eps float64
}

// Func reduces a trajectory to one value per scenario (length 1 for a
// single-scenario trajectory, N for a batch; row order preserved).
type Func func(tr *domain.Trajectory, params Params) []float64

// Registry is a name -> reducer lookup table. Safe for concurrent reads;
// in normal use it is populated once at startup and read-only afterwards.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a named reducer. Returns ErrDuplicateMetric if the name is
// taken.
func (r *Registry) Register(name string, fn Func) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMetric, name)
	}
	r.funcs[name] = fn
	return nil
}

// MustRegister is Register that panics on error; for static registration.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup resolves a reducer by name. Returns ErrUnknownMetric if absent.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return fn, nil
}

// Names returns the registered metric names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry holding the built-in metrics.
func Default() *Registry {
	return defaultRegistry
}

func init() {
	defaultRegistry.MustRegister(MetricTTR, TimeToRecovery)
	defaultRegistry.MustRegister(MetricAreaOfLoss, AreaOfLoss)
	defaultRegistry.MustRegister(MetricMinPerf, MinPerf)
	defaultRegistry.MustRegister(MetricResilienceIndex, ResilienceIndex)
}
