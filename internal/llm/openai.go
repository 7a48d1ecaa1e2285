package llm

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Provider against the OpenAI chat completions API
type OpenAIClient struct {
	Model   string
	Timeout time.Duration

	apiKey string
	svc    *openai.Client
}

// NewOpenAI creates an OpenAI provider. An empty apiKey is allowed; Generate
// then fails fast with ErrCredentialMissing instead of calling out.
func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAIClient {
	c := &OpenAIClient{
		Model:   model,
		Timeout: timeout,
		apiKey:  apiKey,
	}
	if apiKey != "" {
		c.svc = openai.NewClient(apiKey)
	}
	return c
}

// Name returns provider name
func (c *OpenAIClient) Name() string { return "openai" }

// Configured reports whether an API key is present
func (c *OpenAIClient) Configured() bool { return c.apiKey != "" }

// Generate sends a system+user exchange and returns the completion text
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.svc == nil {
		return "", ErrCredentialMissing
	}

	model := req.Model
	if model == "" {
		model = c.Model
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	resp, err := c.svc.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
