package quality

import (
	"strings"

	"github.com/kessler-oss/revgen/internal/config"
)

// Scorer aggregates the three evaluators into one weighted quality score
// and applies the hard gates. Stateless between calls; the accepted
// history is passed explicitly so scoring stays reproducible.
type Scorer struct {
	thresholds config.Thresholds
	diversity  DiversityEvaluator
	bias       BiasEvaluator
	realism    RealismEvaluator
}

// NewScorer creates a Scorer with the given guardrail thresholds.
func NewScorer(t config.Thresholds) *Scorer {
	return &Scorer{
		thresholds: t,
		diversity:  DiversityEvaluator{SimilarityCeiling: t.SimilarityCeiling},
		bias:       BiasEvaluator{},
		realism:    RealismEvaluator{MinTechnicalTerms: t.MinTechnicalTerms},
	}
}

// Score evaluates one candidate against its target rating and the
// accepted-sample history. Empty or whitespace-only text is an automatic
// rejection (the evaluators have nothing to score), never a crash.
//
// Rejection reasons are collected in fixed priority order; the first is
// the one recorded for the rejection.
func (s *Scorer) Score(candidate string, rating int, history []string) Score {
	if strings.TrimSpace(candidate) == "" {
		return Score{
			Pass:    false,
			Reasons: []Reason{ReasonEmptyText},
		}
	}

	div := s.diversity.Evaluate(candidate, history)
	bias := s.bias.Evaluate(candidate, rating)
	realism := s.realism.Evaluate(candidate, rating)

	w := s.thresholds.Weights
	overall := div.Score*w.Diversity + bias.Score*w.Bias + realism.Score*w.Realism

	var reasons []Reason
	if bias.LengthAnomalous {
		reasons = append(reasons, ReasonLengthAnomalous)
	}
	if !bias.Aligned {
		reasons = append(reasons, ReasonSentimentMisaligned)
	}
	if div.CeilingExceeded {
		reasons = append(reasons, ReasonTooSimilar)
	}
	if !realism.EnoughTechnicalTerms {
		reasons = append(reasons, ReasonTooFewTechnicalTerms)
	}
	if !realism.Pass {
		reasons = append(reasons, ReasonRealismBelowThreshold)
	}
	if overall < s.thresholds.MinQualityScore {
		reasons = append(reasons, ReasonScoreBelowMinimum)
	}

	return Score{
		Diversity:       div.Score,
		Bias:            bias.Score,
		Realism:         realism.Score,
		Overall:         overall,
		Pass:            len(reasons) == 0,
		Reasons:         reasons,
		DiversityDetail: div,
		BiasDetail:      bias,
		RealismDetail:   realism,
	}
}
