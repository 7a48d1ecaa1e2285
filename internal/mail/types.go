package mail

import (
	"fmt"
	"time"
)

// Category labels assigned by the processing pipeline
const (
	CategoryImportant  = "Important"
	CategoryNewsletter = "Newsletter"
	CategorySpam       = "Spam"
	CategoryToDo       = "To-Do"
)

// ValidCategories lists every label the pipeline may assign
var ValidCategories = []string{CategoryImportant, CategoryNewsletter, CategorySpam, CategoryToDo}

// IsValidCategory reports whether label is one of the fixed category labels
func IsValidCategory(label string) bool {
	for _, c := range ValidCategories {
		if c == label {
			return true
		}
	}
	return false
}

// Email represents a loaded inbox message. Category is empty until the
// pipeline assigns one; every other field is immutable after load.
type Email struct {
	ID        int    `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
	Folder    string `json:"raw_folder"`
	Category  string `json:"category,omitempty"`
}

func (e *Email) String() string {
	return fmt.Sprintf("Email(id=%d, from=%s, subject=%s)", e.ID, e.From, e.Subject)
}

// ActionItem is a task extracted from one email. Deadline is free-form text
// straight from the model; it is never parsed.
type ActionItem struct {
	Task     string `json:"task"`
	Deadline string `json:"deadline,omitempty"`
	EmailID  int    `json:"email_id"`
}

func (a ActionItem) String() string {
	if a.Deadline != "" {
		return fmt.Sprintf("%s (Due: %s)", a.Task, a.Deadline)
	}
	return a.Task
}

// DraftEmail is a generated reply. Drafts are display artifacts only and are
// never transmitted anywhere.
type DraftEmail struct {
	OriginalEmailID int               `json:"original_email_id"`
	Subject         string            `json:"subject"`
	Body            string            `json:"body"`
	Tone            string            `json:"suggested_tone,omitempty"`
	Metadata        map[string]string `json:"metadata"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (d *DraftEmail) String() string {
	return fmt.Sprintf("Draft for Email #%d: %s", d.OriginalEmailID, d.Subject)
}

// NewDraft builds a reply draft for the given email. The subject is always
// derived from the original, and the metadata snapshots the original sender,
// subject and category at drafting time.
func NewDraft(original *Email, body, tone string) *DraftEmail {
	return &DraftEmail{
		OriginalEmailID: original.ID,
		Subject:         "Re: " + original.Subject,
		Body:            body,
		Tone:            tone,
		Metadata: map[string]string{
			"original_from":    original.From,
			"original_subject": original.Subject,
			"category":         original.Category,
		},
		CreatedAt: time.Now(),
	}
}
