// Command server exposes the simulation engine over HTTP:
//   - POST /api/simulate        one scenario, JSON in/out
//   - POST /api/simulate/batch  parallel scenario lists, broadcastable
//   - GET  /ws/simulate         WebSocket: streams batch results one
//     message per scenario as rows complete
//   - GET  /healthz, GET /metrics (Prometheus)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"resilience-lab/internal/domain"
	"resilience-lab/internal/engine"
	"resilience-lab/internal/observability"
	"resilience-lab/internal/storage"
	chstore "resilience-lab/internal/storage/clickhouse"
	"resilience-lab/internal/storage/memory"
	"resilience-lab/internal/storage/migrations"
	pgstore "resilience-lab/internal/storage/postgres"
)

// disruptionRequest mirrors domain.Disruption for JSON decoding.
type disruptionRequest struct {
	Kind         string  `json:"kind"`
	Severity     float64 `json:"severity"`
	DurationDays int     `json:"duration_days"`
	StartDay     int     `json:"start_day"`
}

// policyRequest mirrors domain.Policy for JSON decoding.
type policyRequest struct {
	SafetyStock  float64 `json:"safety_stock"`
	Expediting   bool    `json:"expediting"`
	Overtime     bool    `json:"overtime"`
	DualSourcing bool    `json:"dual_sourcing"`
	Rerouting    bool    `json:"rerouting"`
}

type simulateRequest struct {
	Disruption        disruptionRequest `json:"disruption"`
	Policy            policyRequest     `json:"policy"`
	Shape             string            `json:"shape"`
	HorizonDays       int               `json:"horizon_days"`
	Baseline          float64           `json:"baseline"`
	IncludeTrajectory bool              `json:"include_trajectory"`
}

type batchRequest struct {
	Disruptions []disruptionRequest `json:"disruptions"`
	Policies    []policyRequest     `json:"policies"`
	Shape       string              `json:"shape"`
	HorizonDays int                 `json:"horizon_days"`
	Baseline    float64             `json:"baseline"`
}

type simulateResponse struct {
	Run        *domain.SimulationRun `json:"run"`
	Trajectory []float64             `json:"trajectory,omitempty"`
}

type batchResponse struct {
	Runs []*domain.SimulationRun `json:"runs"`
}

// streamMessage is one WebSocket frame: a scenario result or the final
// done marker.
type streamMessage struct {
	Index int                   `json:"index"`
	Run   *domain.SimulationRun `json:"run,omitempty"`
	Error string                `json:"error,omitempty"`
	Done  bool                  `json:"done,omitempty"`
	Total int                   `json:"total,omitempty"`
}

type server struct {
	runner   *engine.Runner
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (persist run summaries)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (persist trajectory points)")
	namespace := flag.String("metrics-namespace", "resilience_lab", "Prometheus metrics namespace")

	flag.Parse()

	logger := log.New(os.Stderr, "[server] ", log.LstdFlags)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	obs := observability.NewMetrics(*namespace)
	srv := &server{
		runner: engine.NewRunner(engine.RunnerOptions{
			RunStore:   runStore,
			PointStore: pointStore,
			Obs:        obs,
		}),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", srv.handleSimulate)
	mux.HandleFunc("/api/simulate/batch", srv.handleSimulateBatch)
	mux.HandleFunc("/ws/simulate", srv.handleStream)
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown: %v", err)
		}
		cancel()
	}()

	logger.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}

	d, p, opts, err := scenarioFromRequest(req.Disruption, req.Policy, req.Shape, req.HorizonDays, req.Baseline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, tr, err := s.runner.Run(r.Context(), d, p, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrInvalidHorizon) || errors.Is(err, domain.ErrUnknownShape) {
			status = http.StatusBadRequest
		} else if errors.Is(err, storage.ErrDuplicateKey) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	resp := simulateResponse{Run: run}
	if req.IncludeTrajectory {
		resp.Trajectory = tr.Series()
	}
	writeJSON(w, s.logger, resp)
}

func (s *server) handleSimulateBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}

	disruptions, policies, opts, err := batchFromRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runs, _, err := s.runner.RunBatch(r.Context(), disruptions, policies, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrEmptyBatch) || errors.Is(err, engine.ErrBatchLenMismatch) ||
			errors.Is(err, engine.ErrInvalidHorizon) {
			status = http.StatusBadRequest
		} else if errors.Is(err, storage.ErrDuplicateKey) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, s.logger, batchResponse{Runs: runs})
}

// handleStream upgrades to WebSocket, reads one batch request, and streams
// each scenario's run summary as it completes, in input order.
func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	var req batchRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(streamMessage{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	disruptions, policies, opts, err := batchFromRequest(req)
	if err != nil {
		_ = conn.WriteJSON(streamMessage{Error: err.Error()})
		return
	}

	disruptions, policies, err = engine.Broadcast(disruptions, policies)
	if err != nil {
		_ = conn.WriteJSON(streamMessage{Error: err.Error()})
		return
	}

	for i := range disruptions {
		run, _, err := s.runner.Run(r.Context(), disruptions[i], policies[i], opts)
		if err != nil {
			_ = conn.WriteJSON(streamMessage{Index: i, Error: err.Error()})
			return
		}
		if err := conn.WriteJSON(streamMessage{Index: i, Run: run}); err != nil {
			s.logger.Printf("WebSocket write: %v", err)
			return
		}
	}
	_ = conn.WriteJSON(streamMessage{Done: true, Total: len(disruptions)})
}

func scenarioFromRequest(dr disruptionRequest, pr policyRequest, shapeName string, horizonDays int, baseline float64) (domain.Disruption, domain.Policy, engine.Options, error) {
	var opts engine.Options

	d, err := domain.NewDisruption(domain.DisruptionKind(dr.Kind), dr.Severity, dr.DurationDays, dr.StartDay)
	if err != nil {
		return domain.Disruption{}, domain.Policy{}, opts, fmt.Errorf("invalid disruption: %w", err)
	}

	p := domain.NewPolicy(pr.SafetyStock, pr.Expediting, pr.Overtime, pr.DualSourcing, pr.Rerouting)

	shape := domain.ShapeLogistic
	if shapeName != "" {
		shape, err = domain.ParseCurveShape(shapeName)
		if err != nil {
			return domain.Disruption{}, domain.Policy{}, opts, err
		}
	}
	if horizonDays == 0 {
		horizonDays = engine.DefaultHorizonDays
	}

	opts = engine.Options{HorizonDays: horizonDays, Baseline: baseline, Shape: shape}
	return d, p, opts, nil
}

func batchFromRequest(req batchRequest) ([]domain.Disruption, []domain.Policy, engine.Options, error) {
	var opts engine.Options

	disruptions := make([]domain.Disruption, len(req.Disruptions))
	for i, dr := range req.Disruptions {
		d, err := domain.NewDisruption(domain.DisruptionKind(dr.Kind), dr.Severity, dr.DurationDays, dr.StartDay)
		if err != nil {
			return nil, nil, opts, fmt.Errorf("invalid disruption %d: %w", i, err)
		}
		disruptions[i] = d
	}

	policies := make([]domain.Policy, len(req.Policies))
	for i, pr := range req.Policies {
		policies[i] = domain.NewPolicy(pr.SafetyStock, pr.Expediting, pr.Overtime, pr.DualSourcing, pr.Rerouting)
	}

	shape := domain.ShapeLogistic
	if req.Shape != "" {
		var err error
		shape, err = domain.ParseCurveShape(req.Shape)
		if err != nil {
			return nil, nil, opts, err
		}
	}
	horizonDays := req.HorizonDays
	if horizonDays == 0 {
		horizonDays = engine.DefaultHorizonDays
	}

	opts = engine.Options{HorizonDays: horizonDays, Baseline: req.Baseline, Shape: shape}
	return disruptions, policies, opts, nil
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Printf("Encode response: %v", err)
	}
}
