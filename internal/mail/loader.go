package mail

import (
	"encoding/json"
	"log"
	"os"
)

// rawEmail mirrors one record file entry. Every field except id carries a
// stated default so a sparse record still loads.
type rawEmail struct {
	ID        *int    `json:"id"`
	From      *string `json:"from"`
	To        *string `json:"to"`
	Subject   *string `json:"subject"`
	Body      *string `json:"body"`
	Timestamp *string `json:"timestamp"`
	RawFolder *string `json:"raw_folder"`
}

// LoadInbox reads the JSON record file at path and returns the emails it
// contains. A missing or unreadable file yields an empty inbox, never an
// error; individually malformed entries are skipped with a logged notice.
func LoadInbox(path string) []*Email {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: could not read inbox file %s: %v", path, err)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Warning: could not parse inbox file %s: %v", path, err)
		return nil
	}

	emails := make([]*Email, 0, len(raw))
	for i, item := range raw {
		var r rawEmail
		if err := json.Unmarshal(item, &r); err != nil {
			log.Printf("Warning: skipping malformed inbox entry %d: %v", i, err)
			continue
		}
		emails = append(emails, &Email{
			ID:        intOr(r.ID, 0),
			From:      strOr(r.From, "unknown@example.com"),
			To:        strOr(r.To, "user@company.com"),
			Subject:   strOr(r.Subject, "No Subject"),
			Body:      strOr(r.Body, ""),
			Timestamp: strOr(r.Timestamp, ""),
			Folder:    strOr(r.RawFolder, "INBOX"),
		})
	}
	return emails
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func strOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
