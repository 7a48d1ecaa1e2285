package services

import (
	"sync"

	"github.com/dmolina/promptbox/internal/mail"
)

// ChatMessage is one turn in the agent conversation
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}

// SessionState owns all in-memory state for the single active user session:
// the loaded inbox, processing results, drafts, chat history and selection.
// Each field has one writer (the UI action that produces it); the mutex only
// guards against reads racing the bulk-processing goroutine.
type SessionState struct {
	mu sync.RWMutex

	inbox      *mail.Inbox
	processed  map[int]ProcessResult
	drafts     map[int]*mail.DraftEmail
	chat       []ChatMessage
	selectedID int
}

// NewSessionState creates an empty session
func NewSessionState() *SessionState {
	return &SessionState{
		inbox:      mail.NewInbox(nil),
		processed:  make(map[int]ProcessResult),
		drafts:     make(map[int]*mail.DraftEmail),
		selectedID: -1,
	}
}

// SetInbox replaces the loaded inbox and clears per-email results
func (s *SessionState) SetInbox(inbox *mail.Inbox) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox = inbox
	s.processed = make(map[int]ProcessResult)
	s.drafts = make(map[int]*mail.DraftEmail)
	s.selectedID = -1
}

// Inbox returns the loaded inbox
func (s *SessionState) Inbox() *mail.Inbox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inbox
}

// SetProcessed stores the bulk-processing results
func (s *SessionState) SetProcessed(results map[int]ProcessResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = results
}

// Processed returns the result for one email, if present
func (s *SessionState) Processed(emailID int) (ProcessResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.processed[emailID]
	return r, ok
}

// ProcessedCount returns how many emails have results
func (s *SessionState) ProcessedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processed)
}

// SetDraft stores the draft for an email; regenerating overwrites the prior
// draft for that email.
func (s *SessionState) SetDraft(d *mail.DraftEmail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.OriginalEmailID] = d
}

// Draft returns the stored draft for an email, or nil
func (s *SessionState) Draft(emailID int) *mail.DraftEmail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[emailID]
}

// AppendChat adds one turn to the conversation history
func (s *SessionState) AppendChat(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, ChatMessage{Role: role, Content: content})
}

// Chat returns a copy of the conversation history
func (s *SessionState) Chat() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// ClearChat resets the conversation history
func (s *SessionState) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
}

// SetSelected records the currently selected email ID (-1 for none)
func (s *SessionState) SetSelected(emailID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = emailID
}

// Selected returns the selected email, or nil when none is selected
func (s *SessionState) Selected() *mail.Email {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedID < 0 || s.inbox == nil {
		return nil
	}
	return s.inbox.Get(s.selectedID)
}
