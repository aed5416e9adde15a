// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Simulation metrics
	ScenariosSimulated *prometheus.CounterVec // by curve shape
	BatchesSimulated   prometheus.Counter
	SimulationErrors   prometheus.Counter
	SimulationDuration prometheus.Histogram

	// Persistence metrics
	RunsPersisted   prometheus.Counter
	PersistErrors   *prometheus.CounterVec // by store
	DuplicateRuns   prometheus.Counter
	PointsPersisted prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "resilience_lab"
	}

	return &Metrics{
		ScenariosSimulated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_simulated_total",
			Help:      "Number of scenarios simulated, by curve shape.",
		}, []string{"shape"}),
		BatchesSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_simulated_total",
			Help:      "Number of batch simulations executed.",
		}),
		SimulationErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_errors_total",
			Help:      "Number of simulations that failed.",
		}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of a single scenario simulation.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		RunsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_persisted_total",
			Help:      "Number of simulation runs written to the run store.",
		}),
		PersistErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_errors_total",
			Help:      "Number of persistence failures, by store.",
		}, []string{"store"}),
		DuplicateRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_runs_total",
			Help:      "Number of runs rejected because the identical scenario was already stored.",
		}),
		PointsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trajectory_points_persisted_total",
			Help:      "Number of trajectory points written to the point store.",
		}),
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
