package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmolina/promptbox/internal/llm"
)

// Sampling parameters for every gateway call. Answers are short and
// structured, so a modest output cap is enough.
const (
	gatewayTemperature = 0.7
	gatewayMaxTokens   = 1000
)

// jsonOnlyInstruction is appended to the system text by InvokeJSON
const jsonOnlyInstruction = "\n\nIMPORTANT: Respond with valid JSON only, no additional text."

// Fixed user-facing messages for classified gateway failures
const (
	MsgCredentialMissing = "Error: API key not configured. Set OPENAI_API_KEY in your environment or api_key in the config file."
	MsgInvalidCredential = "Authentication Error: Invalid API key. Please check your OPENAI_API_KEY."
	MsgRateLimited       = "Rate Limit Error: Too many requests. Please wait a moment and try again."
)

// GatewayImpl implements LLMGateway on top of an llm.Provider
type GatewayImpl struct {
	provider llm.Provider
}

// NewGateway creates a new model gateway
func NewGateway(provider llm.Provider) *GatewayImpl {
	return &GatewayImpl{provider: provider}
}

// Configured reports whether the underlying provider has its credential.
// Providers that need no credential (ollama, bedrock via AWS chain) always
// report true once constructed.
func (g *GatewayImpl) Configured() bool {
	if g.provider == nil {
		return false
	}
	if c, ok := g.provider.(llm.Configured); ok {
		return c.Configured()
	}
	return true
}

// Available reports whether the provider endpoint is reachable. Providers
// without a reachability check are assumed reachable.
func (g *GatewayImpl) Available() bool {
	if g.provider == nil {
		return false
	}
	if a, ok := g.provider.(llm.Available); ok {
		return a.IsAvailable()
	}
	return true
}

// Invoke sends one system+user exchange and returns the response text.
// Never returns an error: failures come back as classified messages.
func (g *GatewayImpl) Invoke(ctx context.Context, system, user, modelOverride string) string {
	if g.provider == nil {
		return MsgCredentialMissing
	}

	text, err := g.provider.Generate(ctx, llm.Request{
		System:      system,
		User:        user,
		Model:       modelOverride,
		Temperature: gatewayTemperature,
		MaxTokens:   gatewayMaxTokens,
	})
	if err != nil {
		return classifyError(err)
	}
	return strings.TrimSpace(text)
}

// InvokeJSON biases the exchange toward machine-readable output. Callers
// parse; this performs no parsing itself.
func (g *GatewayImpl) InvokeJSON(ctx context.Context, system, user, modelOverride string) string {
	return g.Invoke(ctx, system+jsonOnlyInstruction, user, modelOverride)
}

// ClassifyProviderError maps a raw provider error onto a service sentinel by
// substring inspection of the error text. The provider's text is preserved in
// the wrap. Errors that match no known category pass through untouched.
func ClassifyProviderError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCredentialMissing) {
		return err
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "authentication") || strings.Contains(lower, "api_key") || strings.Contains(lower, "api key"):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case strings.Contains(lower, "rate_limit") || strings.Contains(lower, "rate limit"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(lower, "model"):
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") || strings.Contains(lower, "timeout"):
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	default:
		return err
	}
}

// classifyError turns a provider error into the fixed user-facing message for
// its sentinel category.
func classifyError(err error) string {
	msg := err.Error()
	classified := ClassifyProviderError(err)
	switch {
	case errors.Is(classified, ErrCredentialMissing):
		return MsgCredentialMissing
	case errors.Is(classified, ErrUnauthorized):
		return MsgInvalidCredential
	case errors.Is(classified, ErrRateLimited):
		return MsgRateLimited
	case errors.Is(classified, ErrModelUnavailable):
		return fmt.Sprintf("Model Error: The specified model may not be available. Error: %s", msg)
	default:
		return fmt.Sprintf("LLM Error: %s", msg)
	}
}
