package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/idhash"
	"resilience-lab/internal/metrics"
	"resilience-lab/internal/observability"
	"resilience-lab/internal/storage"
)

// Runner executes simulations and persists their results: the flattened
// run summary goes to the run store and the per-day trajectory to the
// point store. Both stores are optional; a nil store skips that side of
// persistence (useful for ad-hoc CLI runs).
type Runner struct {
	runStore   storage.RunStore
	pointStore storage.TrajectoryPointStore
	obs        *observability.Metrics
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	RunStore   storage.RunStore
	PointStore storage.TrajectoryPointStore
	Obs        *observability.Metrics
}

// NewRunner creates a simulation runner.
func NewRunner(opts RunnerOptions) *Runner {
	return &Runner{
		runStore:   opts.RunStore,
		pointStore: opts.PointStore,
		obs:        opts.Obs,
	}
}

// Run executes one scenario end to end.
// Steps:
//  1. Simulate the trajectory
//  2. Compute the four built-in metrics
//  3. Build the SimulationRun summary (content-addressed run_id)
//  4. Persist the run summary and trajectory points
func (r *Runner) Run(ctx context.Context, d domain.Disruption, p domain.Policy, opts Options) (*domain.SimulationRun, *domain.Trajectory, error) {
	started := time.Now()

	tr, err := Simulate(d, p, opts)
	if err != nil {
		if r.obs != nil {
			r.obs.SimulationErrors.Inc()
		}
		return nil, nil, err
	}

	values, err := metrics.Compute(tr, nil, metrics.Params{})
	if err != nil {
		return nil, nil, err
	}

	opts = opts.normalized()
	res := Resolve(d, p, opts.Shape)
	run := &domain.SimulationRun{
		RunID:       idhash.ComputeRunID(d, p, opts.Shape, opts.HorizonDays, opts.Baseline),
		CreatedAtMs: started.UnixMilli(),

		Kind:         d.Kind,
		Severity:     d.Severity,
		DurationDays: d.DurationDays,
		StartDay:     d.StartDay,

		SafetyStock:  p.SafetyStock,
		Expediting:   p.Expediting,
		Overtime:     p.Overtime,
		DualSourcing: p.DualSourcing,
		Rerouting:    p.Rerouting,

		Shape:       opts.Shape,
		HorizonDays: opts.HorizonDays,
		Baseline:    opts.Baseline,

		Depth:     res.Depth,
		TTRModel:  res.TTR,
		CostProxy: res.CostProxy,

		TTR:             int(values[metrics.MetricTTR][0]),
		AreaOfLoss:      values[metrics.MetricAreaOfLoss][0],
		MinPerf:         values[metrics.MetricMinPerf][0],
		ResilienceIndex: values[metrics.MetricResilienceIndex][0],
	}

	if r.obs != nil {
		r.obs.ScenariosSimulated.WithLabelValues(string(opts.Shape)).Inc()
		r.obs.SimulationDuration.Observe(time.Since(started).Seconds())
	}

	if err := r.persist(ctx, run, tr); err != nil {
		return nil, nil, err
	}
	return run, tr.WithMeta(map[string]any{"run_id": run.RunID}), nil
}

// RunBatch broadcasts and executes every pair, persisting each scenario
// individually, and returns the per-scenario runs alongside the stacked
// batch trajectory. Row order matches input order.
func (r *Runner) RunBatch(ctx context.Context, disruptions []domain.Disruption, policies []domain.Policy, opts Options) ([]*domain.SimulationRun, *domain.Trajectory, error) {
	opts = opts.normalized()
	if opts.HorizonDays <= 0 {
		return nil, nil, ErrInvalidHorizon
	}

	disruptions, policies, err := Broadcast(disruptions, policies)
	if err != nil {
		return nil, nil, err
	}

	runs := make([]*domain.SimulationRun, len(disruptions))
	rows := make([][]float64, len(disruptions))
	for i := range disruptions {
		run, tr, err := r.Run(ctx, disruptions[i], policies[i], opts)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		runs[i] = run
		rows[i] = tr.Series()
	}

	if r.obs != nil {
		r.obs.BatchesSimulated.Inc()
	}

	meta := map[string]any{
		"n":           len(rows),
		"baseline":    opts.Baseline,
		"curve_shape": opts.Shape,
	}
	tr, err := domain.NewBatchTrajectory(rows, opts.Baseline, meta)
	if err != nil {
		return nil, nil, err
	}
	return runs, tr, nil
}

func (r *Runner) persist(ctx context.Context, run *domain.SimulationRun, tr *domain.Trajectory) error {
	if r.runStore != nil {
		if err := r.runStore.Insert(ctx, run); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) && r.obs != nil {
				r.obs.DuplicateRuns.Inc()
			}
			if r.obs != nil {
				r.obs.PersistErrors.WithLabelValues("runs").Inc()
			}
			return fmt.Errorf("persist run %s: %w", run.RunID, err)
		}
		if r.obs != nil {
			r.obs.RunsPersisted.Inc()
		}
	}

	if r.pointStore != nil {
		series := tr.Series()
		loss := tr.Loss()[0]
		points := make([]*domain.TrajectoryPoint, len(series))
		for day, perf := range series {
			points[day] = &domain.TrajectoryPoint{
				RunID:       run.RunID,
				Day:         day,
				Performance: perf,
				Loss:        loss[day],
			}
		}
		if err := r.pointStore.InsertBulk(ctx, points); err != nil {
			if r.obs != nil {
				r.obs.PersistErrors.WithLabelValues("points").Inc()
			}
			return fmt.Errorf("persist trajectory %s: %w", run.RunID, err)
		}
		if r.obs != nil {
			r.obs.PointsPersisted.Add(float64(len(points)))
		}
	}

	return nil
}
