package mail

// Inbox holds the loaded emails for the active session. Point lookups are by
// email ID; order is load order.
type Inbox struct {
	emails []*Email
}

// NewInbox wraps an already loaded email list
func NewInbox(emails []*Email) *Inbox {
	return &Inbox{emails: emails}
}

// Emails returns the underlying list in load order
func (in *Inbox) Emails() []*Email {
	return in.emails
}

// Len returns the number of loaded emails
func (in *Inbox) Len() int {
	return len(in.emails)
}

// Get returns the email with the given ID, or nil if absent
func (in *Inbox) Get(id int) *Email {
	for _, e := range in.emails {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FilterByCategory returns the emails carrying the given category label
func (in *Inbox) FilterByCategory(category string) []*Email {
	var out []*Email
	for _, e := range in.emails {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// CategoryCounts returns the number of emails per category label.
// Uncategorized emails are counted under "Uncategorized".
func (in *Inbox) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range in.emails {
		cat := e.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		counts[cat]++
	}
	return counts
}
