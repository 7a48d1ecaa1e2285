package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmolina/promptbox/internal/mail"
)

// Fixed answers for the short-circuit intents
const (
	MsgNoTasksFound    = "No specific tasks found in this email."
	MsgNoImportant     = "No emails marked as Important."
	MsgNoToDo          = "No emails categorized as To-Do."
	maxListedEmails    = 5
)

// capabilitiesGuidance is appended to the general-agent template on the
// free-form path so the model knows what the surrounding app can do.
const capabilitiesGuidance = `

Available capabilities:
- Summarize emails
- Extract action items and tasks
- Draft replies
- Categorize emails (Important, Newsletter, Spam, To-Do)
- Filter and search emails

When asked about tasks or to-dos, check if emails are categorized as "To-Do".
When asked about urgent emails, look for "Important" category.
Be helpful, concise, and actionable.
`

// AgentImpl implements AgentService. It is a deliberately simple keyword
// router: a small ordered intent list answered without a model call, with
// everything else falling through to the general gateway path. The
// precedence below is part of the contract; ambiguous queries resolve to the
// first match.
type AgentImpl struct {
	gateway  LLMGateway
	pipeline PipelineService
	prompts  PromptService
}

// NewAgent creates a new query agent
func NewAgent(gateway LLMGateway, pipeline PipelineService, prompts PromptService) *AgentImpl {
	return &AgentImpl{gateway: gateway, pipeline: pipeline, prompts: prompts}
}

// Answer responds to a free-text question about the inbox
func (a *AgentImpl) Answer(ctx context.Context, query string, selected *mail.Email, inbox *mail.Inbox) string {
	q := strings.ToLower(query)
	aboutThis := strings.Contains(q, "this") || strings.Contains(q, "email")

	// 1. Summarize the selected email
	if selected != nil && aboutThis &&
		(strings.Contains(q, "summarize") || strings.Contains(q, "summary")) {
		summary := a.pipeline.Summarize(ctx, selected)
		return fmt.Sprintf("Summary of Email #%d:\n\n%s", selected.ID, summary)
	}

	// 2. Tasks from the selected email
	if selected != nil && aboutThis &&
		(strings.Contains(q, "task") || strings.Contains(q, "to-do") || strings.Contains(q, "action")) {
		actions := a.pipeline.ExtractActionItems(ctx, selected)
		if len(actions) == 0 {
			return MsgNoTasksFound
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Tasks from Email #%d:\n\n", selected.ID)
		for _, action := range actions {
			b.WriteString("- " + action.String() + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	// 3. Important emails overview
	if strings.Contains(q, "urgent") || strings.Contains(q, "important") {
		return listByCategory(inbox, mail.CategoryImportant, "Important Emails", MsgNoImportant)
	}

	// 4. To-Do emails overview
	if strings.Contains(q, "to-do") || strings.Contains(q, "todo") {
		return listByCategory(inbox, mail.CategoryToDo, "To-Do Emails", MsgNoToDo)
	}

	// 5. Free-form question: hand the model the inbox context and the query
	system := a.prompts.Current().GeneralAgent + capabilitiesGuidance
	user := fmt.Sprintf("%s\n\n%s\n\nUser Query: %s",
		inboxOverview(inbox), selectedEmailContext(selected), query)

	return a.gateway.Invoke(ctx, system, user, "")
}

// listByCategory renders up to maxListedEmails matching emails as a bulleted
// list with a truncation suffix, or the given empty-result message.
func listByCategory(inbox *mail.Inbox, category, title, emptyMsg string) string {
	matches := inbox.FilterByCategory(category)
	if len(matches) == 0 {
		return emptyMsg
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d):\n\n", title, len(matches))
	shown := matches
	if len(shown) > maxListedEmails {
		shown = shown[:maxListedEmails]
	}
	for _, e := range shown {
		fmt.Fprintf(&b, "- ID %d: %s (from %s)\n", e.ID, e.Subject, e.From)
	}
	if extra := len(matches) - maxListedEmails; extra > 0 {
		fmt.Fprintf(&b, "\n... and %d more", extra)
	}
	return strings.TrimRight(b.String(), "\n")
}

// inboxOverview builds the inbox-wide context block for the free-form path
func inboxOverview(inbox *mail.Inbox) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total emails in inbox: %d\n", inbox.Len())

	counts := inbox.CategoryCounts()
	if len(counts) == 0 {
		return b.String()
	}

	cats := make([]string, 0, len(counts))
	for cat := range counts {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	parts := make([]string, 0, len(cats))
	for _, cat := range cats {
		parts = append(parts, fmt.Sprintf("%s: %d", cat, counts[cat]))
	}
	b.WriteString("Categories: " + strings.Join(parts, ", "))
	return b.String()
}

// selectedEmailContext renders the currently selected email, if any
func selectedEmailContext(selected *mail.Email) string {
	if selected == nil {
		return ""
	}
	category := selected.Category
	if category == "" {
		category = "Uncategorized"
	}
	return fmt.Sprintf("Currently Selected Email:\nID: %d\nFrom: %s\nSubject: %s\nCategory: %s\nDate: %s\n\nBody:\n%s",
		selected.ID, selected.From, selected.Subject, category, selected.Timestamp, selected.Body)
}
