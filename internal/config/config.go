package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderType identifies a generation backend.
type ProviderType string

const (
	ProviderOpenAI  ProviderType = "openai"
	ProviderMistral ProviderType = "mistral"
	ProviderOllama  ProviderType = "ollama"
)

// ExhaustedPolicy controls what happens to a slot whose attempt cap is
// reached without an accepted sample.
type ExhaustedPolicy string

const (
	// ExhaustedAbandon leaves the slot unfilled; the run under-delivers.
	ExhaustedAbandon ExhaustedPolicy = "abandon"

	// ExhaustedAcceptBest fills the slot with the best-scoring rejected
	// attempt, flagged as below threshold in the dataset.
	ExhaustedAcceptBest ExhaustedPolicy = "accept_best"
)

// Config holds all configuration for the review generation pipeline.
// It is immutable after creation via Load().
type Config struct {
	// Generation contains run-level generation settings
	Generation GenerationConfig `yaml:"generation"`

	// Models lists the generation backends to draw from
	Models []ModelConfig `yaml:"models"`

	// Personas are the reviewer identities to write as
	Personas []Persona `yaml:"personas"`

	// ToolCategories are the dev-tool categories reviews target
	ToolCategories []ToolCategory `yaml:"tool_categories"`

	// RatingDistribution maps star rating (1-5) to draw weight
	RatingDistribution map[int]float64 `yaml:"rating_distribution"`

	// Characteristics are length and tone hints applied to every request
	Characteristics Characteristics `yaml:"review_characteristics"`

	// Thresholds are the quality guardrail settings
	Thresholds Thresholds `yaml:"quality_thresholds"`
}

// GenerationConfig holds run-level generation settings.
type GenerationConfig struct {
	// DefaultCount is the target sample count when --count is not given
	DefaultCount int `yaml:"default_count"`

	// BatchSize controls how often progress lines are printed
	BatchSize int `yaml:"batch_size"`
}

// ModelConfig describes one generation backend.
type ModelConfig struct {
	// Name is the model identifier passed to the backend (e.g. "gpt-4o")
	Name string `yaml:"name"`

	// Provider selects the adapter: "openai", "mistral", or "ollama"
	Provider ProviderType `yaml:"provider"`

	// Temperature is the sampling temperature (default 0.8)
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps the completion length (default 500)
	MaxTokens int `yaml:"max_tokens"`

	// Enabled excludes the model from the rotation when false
	Enabled *bool `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the model participates in the rotation.
// Models are enabled unless explicitly disabled.
func (m ModelConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Persona is a reviewer identity with a draw weight.
type Persona struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Characteristics []string `yaml:"characteristics"`

	// Weight biases the random draw (default 1.0)
	Weight float64 `yaml:"weight"`
}

// ToolCategory is a dev-tool category with concrete examples and features.
type ToolCategory struct {
	Name     string   `yaml:"name"`
	Examples []string `yaml:"examples"`
	Features []string `yaml:"features"`
}

// Characteristics holds tone and length hints for generated reviews.
type Characteristics struct {
	// Tones are candidate tones; one is drawn per slot
	Tones []string `yaml:"tone"`

	// Length bounds the requested review length in words
	Length LengthRange `yaml:"length"`
}

// LengthRange bounds requested review length in words.
type LengthRange struct {
	MinWords int `yaml:"min_words"`
	MaxWords int `yaml:"max_words"`
}

// Weights are the evaluator weights used in the aggregate quality score.
type Weights struct {
	Diversity float64 `yaml:"diversity"`
	Bias      float64 `yaml:"bias"`
	Realism   float64 `yaml:"realism"`
}

// Thresholds are the quality guardrail settings.
type Thresholds struct {
	// MinQualityScore is the minimum weighted overall score (0-100)
	MinQualityScore float64 `yaml:"min_quality_score"`

	// SimilarityCeiling rejects candidates whose maximum similarity to an
	// accepted sample exceeds this value (0-1)
	SimilarityCeiling float64 `yaml:"similarity_ceiling"`

	// MinTechnicalTerms is the hard gate on domain keyword occurrences
	MinTechnicalTerms int `yaml:"min_technical_terms"`

	// MaxAttemptsPerSlot caps regeneration attempts for one slot
	MaxAttemptsPerSlot int `yaml:"max_attempts_per_slot"`

	// MaxTotalAttempts is the global attempt ceiling.
	// Zero means target count times MaxAttemptsPerSlot.
	MaxTotalAttempts int `yaml:"max_total_attempts"`

	// OnExhausted selects the policy for slots that hit the attempt cap
	OnExhausted ExhaustedPolicy `yaml:"on_exhausted"`

	// Weights are the evaluator weights for the aggregate score
	Weights Weights `yaml:"weights"`
}

// EnabledModels returns the models participating in the rotation.
func (c *Config) EnabledModels() []ModelConfig {
	var enabled []ModelConfig
	for _, m := range c.Models {
		if m.IsEnabled() {
			enabled = append(enabled, m)
		}
	}
	return enabled
}

// Load loads configuration from path.
// It applies defaults, then file values, then environment overrides,
// then validates.
//
// An empty path loads built-in defaults (still subject to env overrides
// and validation). A non-empty path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
