package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/kessler-oss/revgen/internal/quality"
)

// Accumulator collects accepted samples, rejection records, and run
// statistics for one run. Single-writer by contract: only the guardrail
// loop touches it, so it carries no locking. No partial snapshots are
// exposed while the run is live; Finalize returns the one immutable view.
type Accumulator struct {
	runID      string
	samples    []AcceptedSample
	rejections []RejectionRecord
	stats      RunStatistics
	finalized  bool
}

// NewAccumulator creates an accumulator for a run targeting count samples.
func NewAccumulator(count int) *Accumulator {
	return &Accumulator{
		runID: uuid.New().String(),
		stats: RunStatistics{
			RequestedCount:     count,
			RejectionsByReason: make(map[quality.Reason]int),
			PerModel:           make(map[string]ModelStats),
			StartedAt:          time.Now(),
		},
	}
}

// RunID returns the run identifier.
func (a *Accumulator) RunID() string { return a.runID }

// AcceptedCount returns the number of samples accepted so far.
func (a *Accumulator) AcceptedCount() int { return len(a.samples) }

// TotalAttempts returns the number of attempts recorded so far.
func (a *Accumulator) TotalAttempts() int { return a.stats.TotalAttempts }

// AcceptedTexts returns the accepted review texts in acceptance order.
// This is the history the diversity evaluator scores against: a candidate
// is only ever compared to samples accepted strictly before it.
func (a *Accumulator) AcceptedTexts() []string {
	texts := make([]string, len(a.samples))
	for i, s := range a.samples {
		texts[i] = s.ReviewText
	}
	return texts
}

// RecordAttempt counts one generation attempt against the model.
func (a *Accumulator) RecordAttempt(model string, tokens int, elapsed time.Duration) {
	a.stats.TotalAttempts++
	ms := a.stats.PerModel[model]
	ms.Attempts++
	ms.TotalTokens += tokens
	ms.Elapsed += elapsed
	a.stats.PerModel[model] = ms
}

// Accept appends an accepted sample and updates counters.
func (a *Accumulator) Accept(sample AcceptedSample) {
	sample.ID = uuid.New().String()
	sample.AcceptedAt = time.Now()
	a.samples = append(a.samples, sample)

	a.stats.TotalAccepted++
	if sample.BelowThreshold {
		a.stats.SalvagedSlots++
	}
	ms := a.stats.PerModel[sample.Metadata.Model]
	ms.Accepted++
	a.stats.PerModel[sample.Metadata.Model] = ms
}

// Reject appends a rejection record and updates counters.
func (a *Accumulator) Reject(rec RejectionRecord) {
	a.rejections = append(a.rejections, rec)

	a.stats.TotalRejected++
	a.stats.RejectionsByReason[rec.Reason]++
	if rec.Model != "" {
		ms := a.stats.PerModel[rec.Model]
		ms.Rejected++
		a.stats.PerModel[rec.Model] = ms
	}
}

// Abandon counts a slot left unfilled after exhausting its attempt cap.
func (a *Accumulator) Abandon() {
	a.stats.AbandonedSlots++
}

// SetCapacityExceeded marks the run as stopped by the global ceiling.
func (a *Accumulator) SetCapacityExceeded(warning string) {
	a.stats.CapacityExceeded = true
	a.stats.Warning = warning
}

// Finalize closes the run and returns the immutable dataset snapshot.
// Further mutation calls after Finalize are programming errors; the
// returned dataset owns its slices.
func (a *Accumulator) Finalize() *Dataset {
	a.finalized = true
	a.stats.Duration = time.Since(a.stats.StartedAt)

	samples := make([]AcceptedSample, len(a.samples))
	copy(samples, a.samples)
	rejections := make([]RejectionRecord, len(a.rejections))
	copy(rejections, a.rejections)

	return &Dataset{
		RunID:       a.runID,
		GeneratedAt: time.Now(),
		Samples:     samples,
		Rejections:  rejections,
		Stats:       a.stats,
	}
}
