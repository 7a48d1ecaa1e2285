package llm

import (
	"context"
	"errors"
)

// ErrCredentialMissing is returned by providers that need an API key when
// none is configured. Callers check it before anything hits the network.
var ErrCredentialMissing = errors.New("credential not configured")

// Request is one two-message exchange: the system text carries the behavioral
// instruction, the user text carries the task-specific content.
type Request struct {
	System string
	User   string
	// Model overrides the provider's configured default when non-empty
	Model       string
	Temperature float32
	MaxTokens   int
}

// Provider defines a generic LLM interface
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Configured is implemented by providers that can report whether their
// credential is present without making a call.
type Configured interface {
	Configured() bool
}

// Available is implemented by providers that can cheaply check whether their
// endpoint is reachable.
type Available interface {
	IsAvailable() bool
}
