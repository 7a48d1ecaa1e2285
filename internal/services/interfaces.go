package services

import (
	"context"

	"github.com/dmolina/promptbox/internal/mail"
	"github.com/dmolina/promptbox/internal/prompts"
)

// LLMGateway is the sole component that talks to the external model. Both
// variants have a total contract: they always return displayable text, never
// an error. Failures are classified into fixed user-facing messages.
type LLMGateway interface {
	// Invoke sends one system+user exchange; modelOverride may be empty
	Invoke(ctx context.Context, system, user, modelOverride string) string
	// InvokeJSON appends a strict respond-with-JSON-only instruction to the
	// system text and otherwise delegates to Invoke. It performs no parsing.
	InvokeJSON(ctx context.Context, system, user, modelOverride string) string
	// Configured reports whether a credential is available
	Configured() bool
	// Available reports whether the provider endpoint is reachable. May
	// perform a short network call; run it off the UI goroutine.
	Available() bool
}

// PipelineService runs the four per-email operations. Each is stateless
// given its inputs, performs no retries and caches nothing, and always
// returns a usable value.
type PipelineService interface {
	Categorize(ctx context.Context, email *mail.Email) string
	ExtractActionItems(ctx context.Context, email *mail.Email) []mail.ActionItem
	Summarize(ctx context.Context, email *mail.Email) string
	DraftReply(ctx context.Context, email *mail.Email, tone string) *mail.DraftEmail
}

// AgentService answers free-text questions about the inbox
type AgentService interface {
	Answer(ctx context.Context, query string, selected *mail.Email, inbox *mail.Inbox) string
}

// PromptService handles the editable prompt template set
type PromptService interface {
	Current() *prompts.Config
	Reload() *prompts.Config
	Save(cfg *prompts.Config) error
}

// ProcessResult holds the outcome of one bulk-processing pass over an email
type ProcessResult struct {
	Category string
	Actions  []mail.ActionItem
}

// InboxService loads the record set and runs the bulk processing pass
type InboxService interface {
	Load() *mail.Inbox
	// ProcessAll categorizes and extracts tasks for every email, strictly
	// sequentially, mutating each email's Category. The progress callback
	// (optional) fires before each email is processed.
	ProcessAll(ctx context.Context, inbox *mail.Inbox, progress func(done, total int, email *mail.Email)) map[int]ProcessResult
}
