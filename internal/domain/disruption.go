package domain

import "errors"

// DisruptionKind categorizes a disruption event. Informational only:
// the curve math depends on severity/duration, not the kind.
type DisruptionKind string

// Supported disruption kinds.
const (
	KindSupplierShutdown DisruptionKind = "supplier_shutdown"
	KindPortClosure      DisruptionKind = "port_closure"
	KindTransportDelay   DisruptionKind = "transport_delay"
	KindCyberattack      DisruptionKind = "cyberattack"
	KindDemandSpike      DisruptionKind = "demand_spike"
)

// Construction errors.
var (
	ErrInvalidDuration = errors.New("duration_days must be > 0")
	ErrInvalidStartDay = errors.New("start_day must be >= 0")
)

// Disruption describes one disruption event. Immutable after construction;
// Severity is always in [0,1].
type Disruption struct {
	Kind         DisruptionKind
	Severity     float64
	DurationDays int
	StartDay     int
}

// NewDisruption validates and normalizes a disruption event.
// Severity is clamped into [0,1]; duration and start day are rejected
// rather than clamped (structural fields fail fast).
func NewDisruption(kind DisruptionKind, severity float64, durationDays, startDay int) (Disruption, error) {
	if durationDays <= 0 {
		return Disruption{}, ErrInvalidDuration
	}
	if startDay < 0 {
		return Disruption{}, ErrInvalidStartDay
	}
	return Disruption{
		Kind:         kind,
		Severity:     Clip01(severity),
		DurationDays: durationDays,
		StartDay:     startDay,
	}, nil
}

// Clip01 clamps x into [0,1].
func Clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
