package generator

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	mistralChatURL = "https://api.mistral.ai/v1/chat/completions"

	// mistralTimeout bounds a single completion round-trip
	mistralTimeout = 30 * time.Second
)

// MistralGenerator produces reviews via the Mistral chat completions API.
// The wire format is OpenAI-compatible, so it shares the request helper.
type MistralGenerator struct {
	model       string
	temperature float64
	maxTokens   int
	apiKey      string
	baseURL     string
	client      *http.Client
	limiter     *rate.Limiter
}

// MistralOption customizes a MistralGenerator.
type MistralOption func(*MistralGenerator)

// WithMistralBaseURL overrides the API endpoint (used in tests).
func WithMistralBaseURL(url string) MistralOption {
	return func(g *MistralGenerator) { g.baseURL = url }
}

// NewMistral creates a Mistral-backed generator.
// The API key is read from MISTRAL_API_KEY; a missing key is a fatal
// configuration error.
func NewMistral(model string, temperature float64, maxTokens int, opts ...MistralOption) (*MistralGenerator, error) {
	apiKey := os.Getenv("MISTRAL_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("MISTRAL_API_KEY not set")
	}

	g := &MistralGenerator{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		apiKey:      apiKey,
		baseURL:     mistralChatURL,
		client:      &http.Client{Timeout: mistralTimeout},
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model returns the backend model identifier
func (g *MistralGenerator) Model() string { return g.model }

// Generate calls the chat completions endpoint and extracts the review.
func (g *MistralGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &GenerationError{Provider: "mistral", Model: g.model, Err: err}
	}

	body := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(req)},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}

	start := time.Now()
	resp, err := postChatCompletion(ctx, g.client, g.baseURL, g.apiKey, body)
	if err != nil {
		return nil, &GenerationError{Provider: "mistral", Model: g.model, Err: err}
	}
	elapsed := time.Since(start)

	if len(resp.Choices) == 0 {
		return nil, &GenerationError{
			Provider: "mistral",
			Model:    g.model,
			Err:      fmt.Errorf("response contained no choices"),
		}
	}

	return &Result{
		ReviewText: strings.TrimSpace(resp.Choices[0].Message.Content),
		Metadata: Metadata{
			Model:            g.model,
			Provider:         "mistral",
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			Elapsed:          elapsed,
		},
	}, nil
}
