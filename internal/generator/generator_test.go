package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessler-oss/revgen/internal/config"
)

func testRequest() Request {
	return Request{
		PersonaName:        "Backend Engineer",
		PersonaDescription: "Senior backend engineer working on distributed services",
		PersonaTraits:      []string{"cares about API ergonomics"},
		Category:           "API Testing Tools",
		Tool:               "Postman",
		Rating:             4,
		Tone:               "professional",
		Features:           []string{"request builder", "mock servers"},
		MinWords:           30,
		MaxWords:           200,
	}
}

func TestBuildPromptIncludesRequestFields(t *testing.T) {
	prompt := BuildPrompt(testRequest())

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Tool: Postman")
	assert.Contains(t, prompt, "Category: API Testing Tools")
	assert.Contains(t, prompt, "4/5 stars")
	assert.Contains(t, prompt, "request builder, mock servers")
	assert.Contains(t, prompt, "professional tone")
	assert.Contains(t, prompt, "between 30-200 words")
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := testRequest()
	assert.Equal(t, BuildPrompt(req), BuildPrompt(req))
}

func TestBuildPromptWithoutFeatures(t *testing.T) {
	req := testRequest()
	req.Features = nil

	prompt := BuildPrompt(req)
	assert.Contains(t, prompt, "Mentions specific features of the tool")
}

func TestGenerationErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GenerationError{Provider: "openai", Model: "gpt-4o", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "gpt-4o")
}

func TestNewOpenAIRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAI("gpt-4o", 0.8, 500)
	assert.Error(t, err)
}

func TestOpenAIGenerate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Contains(t, body.Messages[1].Content, "Tool: Postman")

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  A solid API client.  "}},
			},
			"usage": map[string]int{
				"prompt_tokens":     120,
				"completion_tokens": 45,
				"total_tokens":      165,
			},
		})
	}))
	defer srv.Close()

	g, err := NewOpenAI("gpt-4o", 0.8, 500, WithOpenAIBaseURL(srv.URL))
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "A solid API client.", res.ReviewText)
	assert.Equal(t, "openai", res.Metadata.Provider)
	assert.Equal(t, 165, res.Metadata.TotalTokens)
	assert.Positive(t, res.Metadata.Elapsed)
}

func TestOpenAIGenerateErrorStatus(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, err := NewOpenAI("gpt-4o", 0.8, 500, WithOpenAIBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), testRequest())
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "openai", genErr.Provider)
}

func TestOpenAIGenerateNoChoices(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	g, err := NewOpenAI("gpt-4o", 0.8, 500, WithOpenAIBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), testRequest())
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Err.Error(), "no choices")
}

func TestMistralGenerate(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "mistral-key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer mistral-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Works well in our pipeline."}},
			},
			"usage": map[string]int{"total_tokens": 80},
		})
	}))
	defer srv.Close()

	g, err := NewMistral("mistral-small", 0.7, 400, WithMistralBaseURL(srv.URL))
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Works well in our pipeline.", res.ReviewText)
	assert.Equal(t, "mistral", res.Metadata.Provider)
}

func TestNewOllamaProbesServer(t *testing.T) {
	var probed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			probed = true
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewOllama(context.Background(), "llama3", 0.8, 500, WithOllamaBaseURL(srv.URL))
	require.NoError(t, err)
	assert.True(t, probed)
}

func TestNewOllamaUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewOllama(context.Background(), "llama3", 0.8, 500, WithOllamaBaseURL(srv.URL))
	assert.Error(t, err)
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			var body ollamaRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "llama3", body.Model)
			assert.False(t, body.Stream)
			assert.True(t, strings.Contains(body.Prompt, "Tool: Postman"))

			json.NewEncoder(w).Encode(map[string]any{
				"response":          "Decent local-first option.",
				"eval_count":        50,
				"prompt_eval_count": 100,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g, err := NewOllama(context.Background(), "llama3", 0.8, 500, WithOllamaBaseURL(srv.URL))
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Decent local-first option.", res.ReviewText)
	assert.Equal(t, 150, res.Metadata.TotalTokens)
}

func TestFromModelConfigUnknownProvider(t *testing.T) {
	_, err := FromModelConfig(context.Background(), config.ModelConfig{
		Name:     "m",
		Provider: "bedrock",
	})
	assert.Error(t, err)
}
