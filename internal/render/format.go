package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/dmolina/promptbox/internal/mail"
)

// EmailRenderer builds terminal-friendly text for emails and drafts
type EmailRenderer struct {
	// CategoryMarkers maps a category label to its list marker
	CategoryMarkers map[string]string
}

// NewEmailRenderer creates a renderer with the default category markers
func NewEmailRenderer() *EmailRenderer {
	return &EmailRenderer{
		CategoryMarkers: map[string]string{
			mail.CategoryImportant:  "[!]",
			mail.CategoryToDo:       "[T]",
			mail.CategoryNewsletter: "[N]",
			mail.CategorySpam:       "[S]",
		},
	}
}

// FormatEmailList renders one inbox row: marker, id, subject and sender,
// truncated to maxWidth display cells.
func (er *EmailRenderer) FormatEmailList(e *mail.Email, maxWidth int) string {
	marker := er.CategoryMarkers[e.Category]
	if marker == "" {
		marker = "[ ]"
	}
	line := fmt.Sprintf("%s #%d  %s (%s)", marker, e.ID, e.Subject, e.From)
	return Truncate(line, maxWidth)
}

// FormatEmailHeader renders the detail-view header block
func (er *EmailRenderer) FormatEmailHeader(e *mail.Email) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", e.Subject)
	fmt.Fprintf(&b, "From:    %s\n", e.From)
	fmt.Fprintf(&b, "To:      %s\n", e.To)
	fmt.Fprintf(&b, "Date:    %s\n", e.Timestamp)
	category := e.Category
	if category == "" {
		category = "Uncategorized"
	}
	fmt.Fprintf(&b, "Category: %s", category)
	return b.String()
}

// FormatBody returns the email body as display text, converting HTML bodies
// to plain text when the record file carries markup.
func (er *EmailRenderer) FormatBody(e *mail.Email) string {
	body := e.Body
	if looksLikeHTML(body) {
		if text := htmlToText(body); text != "" {
			body = text
		}
	}
	return strings.TrimSpace(body)
}

// FormatDraft renders a stored draft with its never-sent caveat
func (er *EmailRenderer) FormatDraft(d *mail.DraftEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", d.Subject)
	if d.Tone != "" {
		fmt.Fprintf(&b, "Tone:    %s\n", d.Tone)
	}
	fmt.Fprintf(&b, "Created: %s\n\n", d.CreatedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(d.Body)
	b.WriteString("\n\nDraft only, not sent. No email sending functionality.")
	return b.String()
}

// Truncate cuts s to at most width display cells, appending an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Preview returns the first n characters of a body for list display
func Preview(body string, n int) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= n {
		return body
	}
	return string(runes[:n]) + "..."
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") || strings.Contains(lower, "<p>")
}

// htmlToText extracts readable text from an HTML fragment, keeping rough
// block structure. Script and style contents are dropped.
func htmlToText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head":
				return
			case "br":
				b.WriteString("\n")
			case "p", "div", "li", "tr", "h1", "h2", "h3", "h4":
				b.WriteString("\n")
			}
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Collapse runs of blank lines
	lines := strings.Split(b.String(), "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
