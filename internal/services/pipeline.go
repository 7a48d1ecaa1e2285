package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/dmolina/promptbox/internal/mail"
)

// PipelineImpl implements PipelineService
type PipelineImpl struct {
	gateway LLMGateway
	prompts PromptService
}

// NewPipeline creates a new processing pipeline
func NewPipeline(gateway LLMGateway, prompts PromptService) *PipelineImpl {
	return &PipelineImpl{gateway: gateway, prompts: prompts}
}

// Categorize classifies one email into a fixed label set. Responses outside
// the set fall back to Important so unclear mail is never silently filed
// away as Spam or Newsletter.
func (p *PipelineImpl) Categorize(ctx context.Context, email *mail.Email) string {
	user := fmt.Sprintf("Subject: %s\nFrom: %s\n\n%s", email.Subject, email.From, email.Body)

	response := p.gateway.Invoke(ctx, p.prompts.Current().Categorization, user, "")

	category := strings.TrimSpace(response)
	if i := strings.IndexByte(category, '\n'); i >= 0 {
		category = strings.TrimSpace(category[:i])
	}

	if !mail.IsValidCategory(category) {
		category = mail.CategoryImportant
	}
	return category
}

// ExtractActionItems pulls a task list out of one email. Any parse failure
// degrades to an empty list; extraction never errors out to the caller.
func (p *PipelineImpl) ExtractActionItems(ctx context.Context, email *mail.Email) []mail.ActionItem {
	user := fmt.Sprintf("Subject: %s\nFrom: %s\n\n%s", email.Subject, email.From, email.Body)

	response := p.gateway.InvokeJSON(ctx, p.prompts.Current().ActionItem, user, "")

	items, err := parseActionItems(response, email.ID)
	if err != nil {
		log.Printf("Warning: could not parse action items for email %d: %v", email.ID, err)
		return nil
	}
	return items
}

// parseActionItems decodes a JSON task array out of model output. The array
// may be wrapped in prose, so the substring between the first '[' and the
// last ']' is tried first, then the whole response verbatim.
func parseActionItems(response string, emailID int) ([]mail.ActionItem, error) {
	payload := response
	start := strings.IndexByte(response, '[')
	end := strings.LastIndexByte(response, ']')
	if start >= 0 && end > start {
		payload = response[start : end+1]
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %v", ErrInvalidFormat, err)
	}

	items := make([]mail.ActionItem, 0, len(raw))
	for _, elem := range raw {
		// Only object elements carry tasks. Strings, numbers and nulls are
		// skipped, not fatal; null in particular decodes into a struct as a
		// silent no-op, so the token itself is checked first.
		token := strings.TrimSpace(string(elem))
		if !strings.HasPrefix(token, "{") {
			continue
		}
		var obj struct {
			Task     string `json:"task"`
			Deadline string `json:"deadline"`
		}
		if err := json.Unmarshal(elem, &obj); err != nil {
			continue
		}
		items = append(items, mail.ActionItem{
			Task:     obj.Task,
			Deadline: obj.Deadline,
			EmailID:  emailID,
		})
	}
	return items, nil
}

// Summarize returns the model's summary text verbatim
func (p *PipelineImpl) Summarize(ctx context.Context, email *mail.Email) string {
	user := fmt.Sprintf("Subject: %s\nFrom: %s\nDate: %s\n\n%s",
		email.Subject, email.From, email.Timestamp, email.Body)

	return p.gateway.Invoke(ctx, p.prompts.Current().Summary, user, "")
}

// DraftReply generates a reply draft for one email. Drafts are display
// artifacts; nothing is ever sent.
func (p *PipelineImpl) DraftReply(ctx context.Context, email *mail.Email, tone string) *mail.DraftEmail {
	user := fmt.Sprintf("Original Email:\nSubject: %s\nFrom: %s\nDate: %s\n\n%s\n\n---\nDraft a reply to this email.",
		email.Subject, email.From, email.Timestamp, email.Body)

	system := p.prompts.Current().AutoReply
	if tone != "" {
		system += fmt.Sprintf("\n\nTone: %s", tone)
	}

	body := p.gateway.Invoke(ctx, system, user, "")
	return mail.NewDraft(email, body, tone)
}
