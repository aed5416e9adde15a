// Package idhash computes deterministic, content-addressed identifiers
// for simulation runs. Two runs with identical inputs get identical IDs,
// which makes append-only run stores naturally deduplicating.
package idhash

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"

	"resilience-lab/internal/domain"
)

// ComputeRunID computes a deterministic run_id using SHA256 over the full
// scenario tuple:
//
//	SHA256(kind|severity|duration_days|start_day|safety_stock|expediting|
//	       overtime|dual_sourcing|rerouting|shape|horizon_days|baseline)
//
// Returns the base58-encoded hash (44 characters at most), shorter and
// easier to eyeball in reports than hex.
func ComputeRunID(d domain.Disruption, p domain.Policy, shape domain.CurveShape, horizonDays int, baseline float64) string {
	data := fmt.Sprintf("%s|%g|%d|%d|%g|%t|%t|%t|%t|%s|%d|%g",
		string(d.Kind),
		d.Severity,
		d.DurationDays,
		d.StartDay,
		p.SafetyStock,
		p.Expediting,
		p.Overtime,
		p.DualSourcing,
		p.Rerouting,
		string(shape),
		horizonDays,
		baseline,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}
