package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmolina/promptbox/internal/mail"
)

func TestInboxService_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"subject":"a"},{"id":2,"subject":"b"}]`), 0o644))

	svc := NewInboxService(path, nil)
	inbox := svc.Load()

	assert.Equal(t, 2, inbox.Len())
	assert.Equal(t, "a", inbox.Get(1).Subject)
}

func TestInboxService_Load_MissingFile(t *testing.T) {
	svc := NewInboxService(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Equal(t, 0, svc.Load().Len())
}

func TestInboxService_ProcessAll(t *testing.T) {
	pl := &MockPipeline{}
	inbox := mail.NewInbox([]*mail.Email{
		{ID: 1, Subject: "first"},
		{ID: 2, Subject: "second"},
	})

	pl.On("Categorize", mock.Anything, inbox.Get(1)).Return(mail.CategoryToDo)
	pl.On("Categorize", mock.Anything, inbox.Get(2)).Return(mail.CategorySpam)
	pl.On("ExtractActionItems", mock.Anything, inbox.Get(1)).Return([]mail.ActionItem{{Task: "do it", EmailID: 1}})
	pl.On("ExtractActionItems", mock.Anything, inbox.Get(2)).Return(nil)

	svc := NewInboxService("", pl)

	var progressOrder []int
	results := svc.ProcessAll(context.Background(), inbox, func(done, total int, email *mail.Email) {
		assert.Equal(t, 2, total)
		progressOrder = append(progressOrder, email.ID)
	})

	// Strictly sequential, in load order
	assert.Equal(t, []int{1, 2}, progressOrder)

	// Category mutated on the email records
	assert.Equal(t, mail.CategoryToDo, inbox.Get(1).Category)
	assert.Equal(t, mail.CategorySpam, inbox.Get(2).Category)

	require.Len(t, results, 2)
	assert.Equal(t, mail.CategoryToDo, results[1].Category)
	require.Len(t, results[1].Actions, 1)
	assert.Equal(t, "do it", results[1].Actions[0].Task)
	assert.Empty(t, results[2].Actions)

	pl.AssertExpectations(t)
}

func TestInboxService_ProcessAll_NilProgress(t *testing.T) {
	pl := &MockPipeline{}
	inbox := mail.NewInbox([]*mail.Email{{ID: 1}})
	pl.On("Categorize", mock.Anything, mock.Anything).Return(mail.CategoryImportant)
	pl.On("ExtractActionItems", mock.Anything, mock.Anything).Return(nil)

	svc := NewInboxService("", pl)
	results := svc.ProcessAll(context.Background(), inbox, nil)
	assert.Len(t, results, 1)
}

func TestSessionState(t *testing.T) {
	s := NewSessionState()
	assert.Nil(t, s.Selected())
	assert.Equal(t, 0, s.ProcessedCount())

	inbox := mail.NewInbox([]*mail.Email{{ID: 1, Subject: "hi"}})
	s.SetInbox(inbox)
	s.SetSelected(1)
	require.NotNil(t, s.Selected())
	assert.Equal(t, "hi", s.Selected().Subject)

	s.SetProcessed(map[int]ProcessResult{1: {Category: mail.CategoryToDo}})
	r, ok := s.Processed(1)
	assert.True(t, ok)
	assert.Equal(t, mail.CategoryToDo, r.Category)

	// Regenerating a draft overwrites the prior one
	s.SetDraft(&mail.DraftEmail{OriginalEmailID: 1, Body: "v1"})
	s.SetDraft(&mail.DraftEmail{OriginalEmailID: 1, Body: "v2"})
	assert.Equal(t, "v2", s.Draft(1).Body)

	s.AppendChat("user", "hello")
	s.AppendChat("assistant", "hi")
	assert.Len(t, s.Chat(), 2)
	s.ClearChat()
	assert.Empty(t, s.Chat())

	// Loading a new inbox resets session artifacts
	s.SetInbox(mail.NewInbox(nil))
	assert.Nil(t, s.Selected())
	assert.Nil(t, s.Draft(1))
	assert.Equal(t, 0, s.ProcessedCount())
}

func TestPromptService_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.json")
	svc := NewPromptService(path)

	cfg := svc.Current()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Categorization)

	edited := *cfg
	edited.Summary = "One sentence."
	require.NoError(t, svc.Save(&edited))
	assert.Equal(t, "One sentence.", svc.Current().Summary)

	reloaded := svc.Reload()
	assert.Equal(t, "One sentence.", reloaded.Summary)
}
