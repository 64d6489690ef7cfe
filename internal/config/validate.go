package config

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	if len(cfg.EnabledModels()) == 0 {
		errs = append(errs, &ValidationError{
			Field:   "models",
			Value:   len(cfg.Models),
			Message: "at least one enabled model is required",
		})
	}

	for i, m := range cfg.Models {
		switch m.Provider {
		case ProviderOpenAI, ProviderMistral, ProviderOllama:
		default:
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("models[%d].provider", i),
				Value:   m.Provider,
				Message: "must be 'openai', 'mistral', or 'ollama'",
			})
		}
		if m.Name == "" {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("models[%d].name", i),
				Value:   m.Name,
				Message: "must not be empty",
			})
		}
	}

	if len(cfg.Personas) == 0 {
		errs = append(errs, &ValidationError{
			Field:   "personas",
			Value:   0,
			Message: "at least one persona is required",
		})
	}

	if len(cfg.ToolCategories) == 0 {
		errs = append(errs, &ValidationError{
			Field:   "tool_categories",
			Value:   0,
			Message: "at least one tool category is required",
		})
	}

	var distTotal float64
	for rating, weight := range cfg.RatingDistribution {
		if rating < 1 || rating > 5 {
			errs = append(errs, &ValidationError{
				Field:   "rating_distribution",
				Value:   rating,
				Message: "ratings must be between 1 and 5",
			})
		}
		if weight < 0 {
			errs = append(errs, &ValidationError{
				Field:   "rating_distribution",
				Value:   weight,
				Message: "weights must not be negative",
			})
		}
		distTotal += weight
	}
	if distTotal <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "rating_distribution",
			Value:   distTotal,
			Message: "weights must sum to a positive value",
		})
	}

	t := cfg.Thresholds
	if t.MinQualityScore < 0 || t.MinQualityScore > 100 {
		errs = append(errs, &ValidationError{
			Field:   "quality_thresholds.min_quality_score",
			Value:   t.MinQualityScore,
			Message: "must be between 0 and 100",
		})
	}
	if t.SimilarityCeiling <= 0 || t.SimilarityCeiling > 1 {
		errs = append(errs, &ValidationError{
			Field:   "quality_thresholds.similarity_ceiling",
			Value:   t.SimilarityCeiling,
			Message: "must be in (0, 1]",
		})
	}
	if t.MaxAttemptsPerSlot < 1 {
		errs = append(errs, &ValidationError{
			Field:   "quality_thresholds.max_attempts_per_slot",
			Value:   t.MaxAttemptsPerSlot,
			Message: "must be at least 1",
		})
	}
	if t.MaxTotalAttempts < 0 {
		errs = append(errs, &ValidationError{
			Field:   "quality_thresholds.max_total_attempts",
			Value:   t.MaxTotalAttempts,
			Message: "must not be negative (0 = derived from target count)",
		})
	}
	switch t.OnExhausted {
	case ExhaustedAbandon, ExhaustedAcceptBest:
	default:
		errs = append(errs, &ValidationError{
			Field:   "quality_thresholds.on_exhausted",
			Value:   t.OnExhausted,
			Message: "must be 'abandon' or 'accept_best'",
		})
	}

	w := t.Weights
	weightSum := w.Diversity + w.Bias + w.Realism
	if w.Diversity < 0 || w.Bias < 0 || w.Realism < 0 || math.Abs(weightSum-1.0) > 0.001 {
		errs = append(errs, &ValidationError{
			Field:   "quality_thresholds.weights",
			Value:   weightSum,
			Message: "must be non-negative and sum to 1.0",
		})
	}

	if cfg.Characteristics.Length.MinWords <= 0 ||
		cfg.Characteristics.Length.MaxWords < cfg.Characteristics.Length.MinWords {
		errs = append(errs, &ValidationError{
			Field:   "review_characteristics.length",
			Value:   cfg.Characteristics.Length,
			Message: "min_words must be positive and not exceed max_words",
		})
	}

	return errors.Join(errs...)
}
