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

	"golang.org/x/time/rate"
)

const (
	openAIChatURL = "https://api.openai.com/v1/chat/completions"

	// openAITimeout bounds a single completion round-trip
	openAITimeout = 60 * time.Second
)

// OpenAIGenerator produces reviews via the OpenAI chat completions API.
type OpenAIGenerator struct {
	model       string
	temperature float64
	maxTokens   int
	apiKey      string
	baseURL     string
	client      *http.Client
	limiter     *rate.Limiter
}

// OpenAIOption customizes an OpenAIGenerator.
type OpenAIOption func(*OpenAIGenerator)

// WithOpenAIBaseURL overrides the API endpoint (used in tests).
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(g *OpenAIGenerator) { g.baseURL = url }
}

// WithOpenAIHTTPClient overrides the HTTP client (used in tests).
func WithOpenAIHTTPClient(c *http.Client) OpenAIOption {
	return func(g *OpenAIGenerator) { g.client = c }
}

// NewOpenAI creates an OpenAI-backed generator.
// The API key is read from OPENAI_API_KEY; a missing key is a fatal
// configuration error, not a per-attempt one.
func NewOpenAI(model string, temperature float64, maxTokens int, opts ...OpenAIOption) (*OpenAIGenerator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	g := &OpenAIGenerator{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		apiKey:      apiKey,
		baseURL:     openAIChatURL,
		client:      &http.Client{Timeout: openAITimeout},
		// 2 req/s keeps a long run under typical account rate limits
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model returns the backend model identifier
func (g *OpenAIGenerator) Model() string { return g.model }

// chatRequest is the OpenAI/Mistral-compatible chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate calls the chat completions endpoint and extracts the review.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &GenerationError{Provider: "openai", Model: g.model, Err: err}
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
		return nil, &GenerationError{Provider: "openai", Model: g.model, Err: err}
	}
	elapsed := time.Since(start)

	if len(resp.Choices) == 0 {
		return nil, &GenerationError{
			Provider: "openai",
			Model:    g.model,
			Err:      fmt.Errorf("response contained no choices"),
		}
	}

	return &Result{
		ReviewText: strings.TrimSpace(resp.Choices[0].Message.Content),
		Metadata: Metadata{
			Model:            g.model,
			Provider:         "openai",
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			Elapsed:          elapsed,
		},
	}, nil
}

// postChatCompletion sends an OpenAI-compatible chat completion request.
// Shared by the OpenAI and Mistral adapters (their wire formats match).
func postChatCompletion(ctx context.Context, client *http.Client, url, apiKey string, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}
