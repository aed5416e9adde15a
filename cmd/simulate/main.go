// Command simulate runs a single disruption/policy scenario (or a
// severity sweep) and prints the resulting metrics.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/engine"
	"resilience-lab/internal/storage"
	chstore "resilience-lab/internal/storage/clickhouse"
	"resilience-lab/internal/storage/memory"
	"resilience-lab/internal/storage/migrations"
	pgstore "resilience-lab/internal/storage/postgres"
)

// output is the JSON shape printed per scenario.
type output struct {
	Run        *domain.SimulationRun `json:"run"`
	Trajectory []float64             `json:"trajectory,omitempty"`
}

func main() {
	// Disruption
	kind := flag.String("kind", "port_closure", "Disruption kind: supplier_shutdown, port_closure, transport_delay, cyberattack, demand_spike")
	severity := flag.Float64("severity", 0.5, "Disruption severity (clamped into 0..1)")
	durationDays := flag.Int("duration-days", 10, "Disruption duration in days (> 0)")
	startDay := flag.Int("start-day", 0, "Day the impact begins (>= 0)")

	// Policy
	safetyStock := flag.Float64("safety-stock", 0, "Safety stock level (clamped into 0..1)")
	expediting := flag.Bool("expediting", false, "Enable expediting")
	overtime := flag.Bool("overtime", false, "Enable overtime (adds recovery overshoot)")
	dualSourcing := flag.Bool("dual-sourcing", false, "Enable dual sourcing")
	rerouting := flag.Bool("rerouting", false, "Enable rerouting")

	// Simulation
	shapeName := flag.String("shape", "logistic", "Curve shape: linear, exponential, logistic, delayed_rebound")
	horizonDays := flag.Int("horizon-days", engine.DefaultHorizonDays, "Simulation horizon in days (> 0)")
	baseline := flag.Float64("baseline", engine.DefaultBaseline, "Baseline performance level")
	sweep := flag.String("sweep", "", "Comma-separated severities to run as a batch (overrides --severity)")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (persist run summaries)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (persist trajectory points)")

	// Output
	withTrajectory := flag.Bool("trajectory", false, "Include the full performance series in the output")

	flag.Parse()

	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	shape, err := domain.ParseCurveShape(*shapeName)
	if err != nil {
		logger.Fatalf("Invalid --shape: %v", err)
	}
	if *horizonDays <= 0 {
		logger.Fatal("--horizon-days must be > 0")
	}

	ctx := context.Background()

	var runStore storage.RunStore = memory.NewRunStore()
	var pointStore storage.TrajectoryPointStore = memory.NewTrajectoryPointStore()

	if *postgresDSN != "" {
		pool, err := migrations.RunPostgresMigrations(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Postgres setup failed: %v", err)
		}
		defer pool.Close()
		runStore = pgstore.NewRunStore(pool)
	}
	if *clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("ClickHouse setup failed: %v", err)
		}
		defer conn.Close()
		pointStore = chstore.NewTrajectoryPointStore(conn)
	}

	p := domain.NewPolicy(*safetyStock, *expediting, *overtime, *dualSourcing, *rerouting)
	opts := engine.Options{HorizonDays: *horizonDays, Baseline: *baseline, Shape: shape}
	runner := engine.NewRunner(engine.RunnerOptions{RunStore: runStore, PointStore: pointStore})

	severities := []float64{*severity}
	if *sweep != "" {
		severities = nil
		for _, s := range strings.Split(*sweep, ",") {
			var v float64
			if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &v); err != nil {
				logger.Fatalf("Invalid --sweep entry %q: %v", s, err)
			}
			severities = append(severities, v)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, sev := range severities {
		d, err := domain.NewDisruption(domain.DisruptionKind(*kind), sev, *durationDays, *startDay)
		if err != nil {
			logger.Fatalf("Invalid disruption: %v", err)
		}

		run, tr, err := runner.Run(ctx, d, p, opts)
		if err != nil {
			logger.Fatalf("Simulation failed: %v", err)
		}

		out := output{Run: run}
		if *withTrajectory {
			out.Trajectory = tr.Series()
		}
		if err := enc.Encode(out); err != nil {
			logger.Fatalf("Encode output: %v", err)
		}
	}
}
