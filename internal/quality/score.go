// Package quality implements the guardrail evaluators for generated
// reviews: diversity against the accepted history, sentiment/length
// alignment with the target rating, and domain realism. All scoring is
// deterministic: the same candidate against the same history always
// produces the same score.
package quality

// Reason identifies why an attempt was rejected. Exactly one reason is
// recorded per rejection: the first failing check in priority order.
type Reason string

const (
	// ReasonGenerationError marks an adapter failure (network, timeout,
	// malformed response). Recorded by the pipeline, not the evaluators.
	ReasonGenerationError Reason = "generation_error"

	// ReasonEmptyText marks candidate text the evaluators cannot score
	ReasonEmptyText Reason = "empty_text"

	// ReasonLengthAnomalous marks a word count outside the expected band
	ReasonLengthAnomalous Reason = "length_anomalous"

	// ReasonSentimentMisaligned marks sentiment inconsistent with the rating
	ReasonSentimentMisaligned Reason = "sentiment_misaligned"

	// ReasonTooSimilar marks similarity above the configured ceiling
	ReasonTooSimilar Reason = "similarity_exceeded"

	// ReasonTooFewTechnicalTerms marks too few domain keywords
	ReasonTooFewTechnicalTerms Reason = "too_few_technical_terms"

	// ReasonRealismBelowThreshold marks a failing realism sub-score
	ReasonRealismBelowThreshold Reason = "realism_below_threshold"

	// ReasonScoreBelowMinimum marks a passing-gates candidate whose
	// weighted overall score is still under the minimum
	ReasonScoreBelowMinimum Reason = "score_below_minimum"
)

// Score is the complete quality assessment of one candidate.
// It is derived once per attempt and never mutated.
type Score struct {
	// Diversity, Bias, and Realism are the evaluator sub-scores (0-100)
	Diversity float64 `json:"diversity"`
	Bias      float64 `json:"bias"`
	Realism   float64 `json:"realism"`

	// Overall is the weighted aggregate (0-100)
	Overall float64 `json:"overall"`

	// Pass is true when Overall meets the minimum and no hard gate tripped
	Pass bool `json:"pass"`

	// Reasons lists every failing check in priority order (empty on pass)
	Reasons []Reason `json:"reasons,omitempty"`

	// DiversityDetail, BiasDetail, and RealismDetail expose the
	// per-evaluator breakdowns for reporting
	DiversityDetail DiversityResult `json:"diversity_detail"`
	BiasDetail      BiasResult      `json:"bias_detail"`
	RealismDetail   RealismResult   `json:"realism_detail"`
}

// FirstReason returns the highest-priority rejection reason, or "" on pass.
func (s Score) FirstReason() Reason {
	if len(s.Reasons) == 0 {
		return ""
	}
	return s.Reasons[0]
}
