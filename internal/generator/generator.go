package generator

import (
	"context"
	"fmt"
	"time"
)

// Request describes one generation attempt. It is immutable once drawn;
// a slot's retries reuse the same request so only the backend's sampling
// randomness varies between attempts.
type Request struct {
	// PersonaName is the reviewer identity (e.g. "Backend Engineer")
	PersonaName string `json:"persona"`

	// PersonaDescription expands the identity for the prompt
	PersonaDescription string `json:"persona_description,omitempty"`

	// PersonaTraits are characteristics the review should reflect
	PersonaTraits []string `json:"persona_traits,omitempty"`

	// Category is the dev-tool category (e.g. "CI/CD Platforms")
	Category string `json:"tool_category"`

	// Tool is the concrete tool being reviewed (e.g. "CircleCI")
	Tool string `json:"tool"`

	// Rating is the target star rating, 1-5
	Rating int `json:"rating"`

	// Tone is the requested writing tone
	Tone string `json:"tone"`

	// Features are tool features the review should mention
	Features []string `json:"features,omitempty"`

	// MinWords and MaxWords bound the requested review length
	MinWords int `json:"min_words"`
	MaxWords int `json:"max_words"`
}

// Metadata records how a result was produced.
type Metadata struct {
	// Model is the backend model identifier
	Model string `json:"model"`

	// Provider is the backend kind ("openai", "mistral", "ollama")
	Provider string `json:"provider"`

	// PromptTokens, CompletionTokens, and TotalTokens are usage counts
	// as reported by the backend (zero when unreported)
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"tokens_used"`

	// Elapsed is the wall-clock generation time
	Elapsed time.Duration `json:"generation_time"`
}

// Result is the output of one generation attempt.
type Result struct {
	// ReviewText is the generated review, whitespace-trimmed
	ReviewText string `json:"review_text"`

	// Metadata records the producing model and usage
	Metadata Metadata `json:"metadata"`
}

// Generator is the capability contract for review generation backends.
// Implementations must be safe for sequential reuse across attempts;
// they are not required to be safe for concurrent use.
type Generator interface {
	// Generate produces one review for the request.
	// Failures (network, timeout, malformed response) are returned as
	// *GenerationError and are recoverable at the pipeline level.
	Generate(ctx context.Context, req Request) (*Result, error)

	// Model returns the backend model identifier
	Model() string
}

// GenerationError wraps a failed adapter call. The pipeline counts these
// as rejections and retries up to the per-slot attempt cap.
type GenerationError struct {
	// Provider is the backend kind that failed
	Provider string

	// Model is the backend model identifier
	Model string

	// Err is the underlying cause
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed (model %s): %v", e.Provider, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
