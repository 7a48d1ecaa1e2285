package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmolina/promptbox/internal/mail"
)

// MockGateway implements LLMGateway for testing
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Invoke(ctx context.Context, system, user, modelOverride string) string {
	args := m.Called(ctx, system, user, modelOverride)
	return args.String(0)
}

func (m *MockGateway) InvokeJSON(ctx context.Context, system, user, modelOverride string) string {
	args := m.Called(ctx, system, user, modelOverride)
	return args.String(0)
}

func (m *MockGateway) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockGateway) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func testPromptService(t *testing.T) *PromptServiceImpl {
	t.Helper()
	// Missing file resolves to the built-in defaults
	return NewPromptService(filepath.Join(t.TempDir(), "prompts.json"))
}

func testEmail() *mail.Email {
	return &mail.Email{
		ID:        4,
		From:      "client@corp.com",
		To:        "me@company.com",
		Subject:   "Proposal follow-up",
		Body:      "Can you reply to the client by Friday?",
		Timestamp: "2024-05-02T09:15:00",
	}
}

func TestCategorize_ValidLabel(t *testing.T) {
	gw := &MockGateway{}
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything, "").Return("To-Do")

	p := NewPipeline(gw, testPromptService(t))
	assert.Equal(t, "To-Do", p.Categorize(context.Background(), testEmail()))
}

func TestCategorize_FirstLineOnly(t *testing.T) {
	gw := &MockGateway{}
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything, "").
		Return("Newsletter\nBecause it is a weekly digest.")

	p := NewPipeline(gw, testPromptService(t))
	assert.Equal(t, "Newsletter", p.Categorize(context.Background(), testEmail()))
}

func TestCategorize_InvalidLabelDefaultsToImportant(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"hallucinated label", "Urgent"},
		{"prose", "I think this email is probably spam."},
		{"empty", ""},
		{"wrong case", "to-do"},
		{"gateway error text", MsgRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &MockGateway{}
			gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything, "").Return(tt.response)

			p := NewPipeline(gw, testPromptService(t))
			assert.Equal(t, mail.CategoryImportant, p.Categorize(context.Background(), testEmail()))
		})
	}
}

func TestCategorize_BuildsSubjectFromBodyMessage(t *testing.T) {
	gw := &MockGateway{}
	gw.On("Invoke", mock.Anything, mock.Anything,
		"Subject: Proposal follow-up\nFrom: client@corp.com\n\nCan you reply to the client by Friday?", "").
		Return("Important")

	p := NewPipeline(gw, testPromptService(t))
	p.Categorize(context.Background(), testEmail())
	gw.AssertExpectations(t)
}

func TestExtractActionItems_WellFormed(t *testing.T) {
	gw := &MockGateway{}
	gw.On("InvokeJSON", mock.Anything, mock.Anything, mock.Anything, "").
		Return(`[{"task":"Reply to client","deadline":"Friday"}]`)

	p := NewPipeline(gw, testPromptService(t))
	items := p.ExtractActionItems(context.Background(), testEmail())

	require.Len(t, items, 1)
	assert.Equal(t, "Reply to client", items[0].Task)
	assert.Equal(t, "Friday", items[0].Deadline)
	assert.Equal(t, 4, items[0].EmailID)
}

func TestExtractActionItems_ProseWrappedJSON(t *testing.T) {
	gw := &MockGateway{}
	gw.On("InvokeJSON", mock.Anything, mock.Anything, mock.Anything, "").
		Return("Here are the tasks:\n[{\"task\":\"Book room\"}]\nLet me know.")

	p := NewPipeline(gw, testPromptService(t))
	items := p.ExtractActionItems(context.Background(), testEmail())

	require.Len(t, items, 1)
	assert.Equal(t, "Book room", items[0].Task)
	assert.Empty(t, items[0].Deadline)
}

func TestExtractActionItems_NotJSON(t *testing.T) {
	gw := &MockGateway{}
	gw.On("InvokeJSON", mock.Anything, mock.Anything, mock.Anything, "").
		Return("sorry, I can't help")

	p := NewPipeline(gw, testPromptService(t))
	assert.Empty(t, p.ExtractActionItems(context.Background(), testEmail()))
}

func TestExtractActionItems_SkipsNonObjectElements(t *testing.T) {
	gw := &MockGateway{}
	gw.On("InvokeJSON", mock.Anything, mock.Anything, mock.Anything, "").
		Return(`["just a string", {"task":"Real task"}, 42]`)

	p := NewPipeline(gw, testPromptService(t))
	items := p.ExtractActionItems(context.Background(), testEmail())

	require.Len(t, items, 1)
	assert.Equal(t, "Real task", items[0].Task)
}

func TestExtractActionItems_SkipsNullElements(t *testing.T) {
	// null decodes into a struct without error, so it must be filtered on
	// the raw token, not on the unmarshal result
	gw := &MockGateway{}
	gw.On("InvokeJSON", mock.Anything, mock.Anything, mock.Anything, "").
		Return(`[null, {"task":"Real task"}]`)

	p := NewPipeline(gw, testPromptService(t))
	items := p.ExtractActionItems(context.Background(), testEmail())

	require.Len(t, items, 1)
	assert.Equal(t, "Real task", items[0].Task)
}

func TestExtractActionItems_EmptyArray(t *testing.T) {
	gw := &MockGateway{}
	gw.On("InvokeJSON", mock.Anything, mock.Anything, mock.Anything, "").Return("[]")

	p := NewPipeline(gw, testPromptService(t))
	assert.Empty(t, p.ExtractActionItems(context.Background(), testEmail()))
}

func TestSummarize_ReturnsVerbatim(t *testing.T) {
	gw := &MockGateway{}
	gw.On("Invoke", mock.Anything, mock.Anything,
		"Subject: Proposal follow-up\nFrom: client@corp.com\nDate: 2024-05-02T09:15:00\n\nCan you reply to the client by Friday?", "").
		Return("- Client wants a reply by Friday")

	p := NewPipeline(gw, testPromptService(t))
	out := p.Summarize(context.Background(), testEmail())

	assert.Equal(t, "- Client wants a reply by Friday", out)
	gw.AssertExpectations(t)
}

func TestDraftReply_SubjectAlwaysDerived(t *testing.T) {
	for _, tone := range []string{"", "Formal", "Friendly"} {
		gw := &MockGateway{}
		gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything, "").Return("Happy to help.")

		p := NewPipeline(gw, testPromptService(t))
		draft := p.DraftReply(context.Background(), testEmail(), tone)

		assert.Equal(t, "Re: Proposal follow-up", draft.Subject)
		assert.Equal(t, "Happy to help.", draft.Body)
		assert.Equal(t, tone, draft.Tone)
	}
}

func TestDraftReply_ToneAppendedToSystem(t *testing.T) {
	ps := testPromptService(t)

	gw := &MockGateway{}
	gw.On("Invoke", mock.Anything, ps.Current().AutoReply+"\n\nTone: Concise", mock.Anything, "").
		Return("Noted.")

	p := NewPipeline(gw, ps)
	p.DraftReply(context.Background(), testEmail(), "Concise")
	gw.AssertExpectations(t)
}

func TestDraftReply_MetadataSnapshot(t *testing.T) {
	gw := &MockGateway{}
	gw.On("Invoke", mock.Anything, mock.Anything, mock.Anything, "").Return("ok")

	email := testEmail()
	email.Category = mail.CategoryToDo

	p := NewPipeline(gw, testPromptService(t))
	draft := p.DraftReply(context.Background(), email, "")

	assert.Equal(t, "client@corp.com", draft.Metadata["original_from"])
	assert.Equal(t, "Proposal follow-up", draft.Metadata["original_subject"])
	assert.Equal(t, mail.CategoryToDo, draft.Metadata["category"])
}
