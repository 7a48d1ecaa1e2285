package mail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInboxFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inbox.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInbox_MissingFile(t *testing.T) {
	emails := LoadInbox(filepath.Join(t.TempDir(), "nope.json"))
	assert.Empty(t, emails)
}

func TestLoadInbox_InvalidJSON(t *testing.T) {
	path := writeInboxFile(t, "{not json")
	assert.Empty(t, LoadInbox(path))
}

func TestLoadInbox_AppliesDefaults(t *testing.T) {
	path := writeInboxFile(t, `[{"id": 3}]`)

	emails := LoadInbox(path)
	require.Len(t, emails, 1)

	e := emails[0]
	assert.Equal(t, 3, e.ID)
	assert.Equal(t, "unknown@example.com", e.From)
	assert.Equal(t, "user@company.com", e.To)
	assert.Equal(t, "No Subject", e.Subject)
	assert.Equal(t, "", e.Body)
	assert.Equal(t, "INBOX", e.Folder)
	assert.Empty(t, e.Category)
}

func TestLoadInbox_SkipsMalformedEntries(t *testing.T) {
	path := writeInboxFile(t, `[
		{"id": 1, "subject": "ok"},
		{"id": "not-a-number"},
		{"id": 2, "from": "a@b.com"}
	]`)

	emails := LoadInbox(path)
	require.Len(t, emails, 2)
	assert.Equal(t, 1, emails[0].ID)
	assert.Equal(t, 2, emails[1].ID)
	assert.Equal(t, "a@b.com", emails[1].From)
}

func TestLoadInbox_FullRecord(t *testing.T) {
	path := writeInboxFile(t, `[{
		"id": 7,
		"from": "boss@company.com",
		"to": "me@company.com",
		"subject": "Q3 report",
		"body": "Please send the Q3 numbers.",
		"timestamp": "2024-05-02T09:15:00",
		"raw_folder": "Archive"
	}]`)

	emails := LoadInbox(path)
	require.Len(t, emails, 1)
	assert.Equal(t, "boss@company.com", emails[0].From)
	assert.Equal(t, "Q3 report", emails[0].Subject)
	assert.Equal(t, "Archive", emails[0].Folder)
	assert.Equal(t, "2024-05-02T09:15:00", emails[0].Timestamp)
}

func TestInbox_GetAndFilter(t *testing.T) {
	inbox := NewInbox([]*Email{
		{ID: 1, Category: CategoryImportant},
		{ID: 2, Category: CategoryToDo},
		{ID: 3, Category: CategoryImportant},
		{ID: 4},
	})

	assert.Equal(t, 2, inbox.Get(2).ID)
	assert.Nil(t, inbox.Get(99))
	assert.Len(t, inbox.FilterByCategory(CategoryImportant), 2)
	assert.Len(t, inbox.FilterByCategory(CategorySpam), 0)

	counts := inbox.CategoryCounts()
	assert.Equal(t, 2, counts[CategoryImportant])
	assert.Equal(t, 1, counts[CategoryToDo])
	assert.Equal(t, 1, counts["Uncategorized"])
}

func TestNewDraft(t *testing.T) {
	e := &Email{ID: 5, From: "a@b.com", Subject: "Meeting", Category: CategoryImportant}

	d := NewDraft(e, "Sounds good.", "Friendly")

	assert.Equal(t, "Re: Meeting", d.Subject)
	assert.Equal(t, 5, d.OriginalEmailID)
	assert.Equal(t, "Friendly", d.Tone)
	assert.Equal(t, "a@b.com", d.Metadata["original_from"])
	assert.Equal(t, CategoryImportant, d.Metadata["category"])
	assert.False(t, d.CreatedAt.IsZero())
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range ValidCategories {
		assert.True(t, IsValidCategory(c))
	}
	assert.False(t, IsValidCategory("Urgent"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("important"))
}
