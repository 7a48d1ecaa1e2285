package llm

import (
	"time"
)

// NewProviderFromConfig creates a Provider from config fields. The openai
// provider is the default; apiKey may be empty, in which case invocations
// fail fast without touching the network.
func NewProviderFromConfig(provider, endpoint, region, model string, timeout time.Duration, apiKey string) (Provider, error) {
	switch provider {
	case "openai", "":
		return NewOpenAI(apiKey, model, timeout), nil
	case "ollama":
		return NewOllama(endpoint, model, timeout), nil
	case "bedrock":
		// A nil *BedrockClient must not leak into the interface value, or
		// downstream nil checks stop working.
		p, err := NewBedrock(region, model, timeout)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return NewOpenAI(apiKey, model, timeout), nil
	}
}
