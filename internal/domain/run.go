package domain

// SimulationRun is the flattened, persistable summary of one simulated
// scenario: the inputs, the resolved model quantities, and the four
// built-in metric values. Corresponds to the simulation_runs table.
type SimulationRun struct {
	RunID       string // content-addressed, see internal/idhash
	CreatedAtMs int64  // Unix timestamp in milliseconds

	// Disruption
	Kind         DisruptionKind
	Severity     float64
	DurationDays int
	StartDay     int

	// Policy
	SafetyStock  float64
	Expediting   bool
	Overtime     bool
	DualSourcing bool
	Rerouting    bool

	// Simulation parameters
	Shape       CurveShape
	HorizonDays int
	Baseline    float64

	// Resolved model quantities
	Depth     float64 // clip01(severity * depth_mult)
	TTRModel  int     // modeled time-to-recovery fed to the curve
	CostProxy float64

	// Metric values
	TTR             int // measured recovery index, -1 if never recovered
	AreaOfLoss      float64
	MinPerf         float64
	ResilienceIndex float64
}

// TrajectoryPoint is one day of a persisted trajectory.
// Corresponds to the trajectory_points table in ClickHouse.
type TrajectoryPoint struct {
	RunID       string
	Day         int
	Performance float64
	Loss        float64
}
