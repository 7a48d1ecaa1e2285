package services

import (
	"context"

	"github.com/dmolina/promptbox/internal/mail"
)

// InboxServiceImpl implements InboxService
type InboxServiceImpl struct {
	path     string
	pipeline PipelineService
}

// NewInboxService creates an inbox service reading records from path
func NewInboxService(path string, pipeline PipelineService) *InboxServiceImpl {
	return &InboxServiceImpl{path: path, pipeline: pipeline}
}

// Load reads the record file. A missing or unreadable file yields an empty
// inbox.
func (s *InboxServiceImpl) Load() *mail.Inbox {
	return mail.NewInbox(mail.LoadInbox(s.path))
}

// ProcessAll runs categorization and task extraction over every email,
// strictly sequentially, one call pair per record. Each email's Category is
// mutated exactly once per pass. Runs to completion once started; there is
// no cancellation between records beyond the passed context reaching the
// gateway.
func (s *InboxServiceImpl) ProcessAll(ctx context.Context, inbox *mail.Inbox, progress func(done, total int, email *mail.Email)) map[int]ProcessResult {
	total := inbox.Len()
	results := make(map[int]ProcessResult, total)

	for i, email := range inbox.Emails() {
		if progress != nil {
			progress(i, total, email)
		}

		category := s.pipeline.Categorize(ctx, email)
		actions := s.pipeline.ExtractActionItems(ctx, email)

		email.Category = category
		results[email.ID] = ProcessResult{Category: category, Actions: actions}
	}
	return results
}
