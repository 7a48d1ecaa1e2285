package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmolina/promptbox/internal/mail"
)

func TestFormatEmailList(t *testing.T) {
	er := NewEmailRenderer()
	e := &mail.Email{ID: 3, Subject: "Weekly digest", From: "news@site.com", Category: mail.CategoryNewsletter}

	line := er.FormatEmailList(e, 80)
	assert.Equal(t, "[N] #3  Weekly digest (news@site.com)", line)
}

func TestFormatEmailList_Uncategorized(t *testing.T) {
	er := NewEmailRenderer()
	line := er.FormatEmailList(&mail.Email{ID: 1, Subject: "x", From: "a@b.com"}, 80)
	assert.True(t, strings.HasPrefix(line, "[ ] "))
}

func TestFormatEmailList_Truncates(t *testing.T) {
	er := NewEmailRenderer()
	e := &mail.Email{ID: 1, Subject: strings.Repeat("long ", 30), From: "a@b.com"}

	line := er.FormatEmailList(e, 20)
	assert.LessOrEqual(t, len([]rune(line)), 20)
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestFormatEmailHeader(t *testing.T) {
	er := NewEmailRenderer()
	e := &mail.Email{ID: 1, From: "a@b.com", To: "me@c.com", Subject: "Hi", Timestamp: "2024-05-02"}

	header := er.FormatEmailHeader(e)
	assert.Contains(t, header, "Subject: Hi")
	assert.Contains(t, header, "From:    a@b.com")
	assert.Contains(t, header, "Category: Uncategorized")

	e.Category = mail.CategoryToDo
	assert.Contains(t, er.FormatEmailHeader(e), "Category: To-Do")
}

func TestFormatBody_PlainText(t *testing.T) {
	er := NewEmailRenderer()
	e := &mail.Email{Body: "  hello\nworld  "}
	assert.Equal(t, "hello\nworld", er.FormatBody(e))
}

func TestFormatBody_HTML(t *testing.T) {
	er := NewEmailRenderer()
	e := &mail.Email{Body: "<html><body><p>First line</p><p>Second &amp; last</p><script>x()</script></body></html>"}

	out := er.FormatBody(e)
	assert.Contains(t, out, "First line")
	assert.Contains(t, out, "Second & last")
	assert.NotContains(t, out, "x()")
	assert.NotContains(t, out, "<p>")
}

func TestFormatDraft(t *testing.T) {
	er := NewEmailRenderer()
	d := &mail.DraftEmail{
		OriginalEmailID: 2,
		Subject:         "Re: Hi",
		Body:            "Thanks!",
		Tone:            "Friendly",
		CreatedAt:       time.Date(2024, 5, 2, 9, 15, 0, 0, time.UTC),
	}

	out := er.FormatDraft(d)
	assert.Contains(t, out, "Subject: Re: Hi")
	assert.Contains(t, out, "Tone:    Friendly")
	assert.Contains(t, out, "Created: 2024-05-02 09:15:00")
	assert.Contains(t, out, "Thanks!")
	assert.Contains(t, out, "not sent")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "a b c", Preview("a\nb\n  c", 10))
	assert.Equal(t, "0123456789...", Preview("0123456789abcdef", 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abc", 0))
	out := Truncate("abcdefghij", 5)
	assert.True(t, strings.HasSuffix(out, "…"))
}
