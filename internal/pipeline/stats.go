package pipeline

import (
	"time"

	"github.com/kessler-oss/revgen/internal/quality"
)

// ModelStats aggregates per-model outcomes for a run.
type ModelStats struct {
	Attempts    int           `json:"attempts"`
	Accepted    int           `json:"accepted"`
	Rejected    int           `json:"rejected"`
	TotalTokens int           `json:"total_tokens"`
	Elapsed     time.Duration `json:"elapsed"`
}

// RunStatistics summarizes a generation run. Mutated incrementally by the
// accumulator while the run is live; finalized (and then immutable) when
// the loop terminates.
type RunStatistics struct {
	RequestedCount int `json:"requested_count"`
	TotalAttempts  int `json:"total_attempts"`
	TotalAccepted  int `json:"total_accepted"`
	TotalRejected  int `json:"total_rejected"`

	// AbandonedSlots counts slots that exhausted their attempt cap and
	// were left unfilled (abandon policy)
	AbandonedSlots int `json:"abandoned_slots"`

	// SalvagedSlots counts slots filled with a below-threshold sample
	// (accept_best policy)
	SalvagedSlots int `json:"salvaged_slots"`

	// RejectionsByReason counts rejections per recorded reason
	RejectionsByReason map[quality.Reason]int `json:"rejections_by_reason"`

	// PerModel aggregates outcomes by model identifier
	PerModel map[string]ModelStats `json:"per_model"`

	// CapacityExceeded is true when the global attempt ceiling stopped
	// the run before the target count was met. A warning, not a failure.
	CapacityExceeded bool `json:"capacity_exceeded"`

	// Warning carries the early-termination cause, if any
	Warning string `json:"warning,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// RejectionRate returns rejections as a fraction of all attempts.
func (s RunStatistics) RejectionRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.TotalRejected) / float64(s.TotalAttempts)
}
