package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"

	// ollamaTimeout is generous: local inference can be slow on CPU
	ollamaTimeout = 120 * time.Second
)

// OllamaGenerator produces reviews via a local Ollama server.
type OllamaGenerator struct {
	model       string
	temperature float64
	maxTokens   int
	baseURL     string
	client      *http.Client
}

// OllamaOption customizes an OllamaGenerator.
type OllamaOption func(*OllamaGenerator)

// WithOllamaBaseURL overrides the server address (used in tests).
func WithOllamaBaseURL(url string) OllamaOption {
	return func(g *OllamaGenerator) { g.baseURL = url }
}

// NewOllama creates an Ollama-backed generator and probes the server.
// The server address is read from OLLAMA_BASE_URL (default localhost:11434).
// An unreachable server is a fatal configuration error.
func NewOllama(ctx context.Context, model string, temperature float64, maxTokens int, opts ...OllamaOption) (*OllamaGenerator, error) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	g := &OllamaGenerator{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: ollamaTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.probe(ctx); err != nil {
		return nil, fmt.Errorf("ollama server at %s unreachable: %w", g.baseURL, err)
	}
	return g, nil
}

// probe checks server reachability via the tags endpoint.
func (g *OllamaGenerator) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, g.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Model returns the backend model identifier
func (g *OllamaGenerator) Model() string { return g.model }

// ollamaRequest is the /api/generate request body.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// ollamaResponse is the subset of the /api/generate response we consume.
type ollamaResponse struct {
	Response        string `json:"response"`
	EvalCount       int    `json:"eval_count"`
	PromptEvalCount int    `json:"prompt_eval_count"`
}

// Generate calls /api/generate with the system prompt inlined (Ollama's
// plain generate endpoint has no separate system role).
func (g *OllamaGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	body := ollamaRequest{
		Model:  g.model,
		Prompt: systemPrompt + "\n\n" + BuildPrompt(req),
		Stream: false,
		Options: ollamaOptions{
			Temperature: g.temperature,
			NumPredict:  g.maxTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &GenerationError{Provider: "ollama", Model: g.model, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, &GenerationError{Provider: "ollama", Model: g.model, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &GenerationError{Provider: "ollama", Model: g.model, Err: err}
	}
	defer httpResp.Body.Close()
	elapsed := time.Since(start)

	if httpResp.StatusCode != http.StatusOK {
		return nil, &GenerationError{
			Provider: "ollama",
			Model:    g.model,
			Err:      fmt.Errorf("unexpected status %d", httpResp.StatusCode),
		}
	}

	var resp ollamaResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, &GenerationError{
			Provider: "ollama",
			Model:    g.model,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}

	return &Result{
		ReviewText: strings.TrimSpace(resp.Response),
		Metadata: Metadata{
			Model:            g.model,
			Provider:         "ollama",
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
			Elapsed:          elapsed,
		},
	}, nil
}
