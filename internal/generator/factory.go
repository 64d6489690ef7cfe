package generator

import (
	"context"
	"fmt"

	"github.com/kessler-oss/revgen/internal/config"
)

// FromModelConfig creates a Generator for the given model configuration.
// Returns an error for unknown providers or unreachable/misconfigured
// backends; such errors are fatal (they happen before any generation).
func FromModelConfig(ctx context.Context, mc config.ModelConfig) (Generator, error) {
	temperature := mc.Temperature
	if temperature == 0 {
		temperature = config.DefaultTemperature
	}
	maxTokens := mc.MaxTokens
	if maxTokens == 0 {
		maxTokens = config.DefaultMaxTokens
	}

	switch mc.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(mc.Name, temperature, maxTokens)
	case config.ProviderMistral:
		return NewMistral(mc.Name, temperature, maxTokens)
	case config.ProviderOllama:
		return NewOllama(ctx, mc.Name, temperature, maxTokens)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", mc.Provider)
	}
}
