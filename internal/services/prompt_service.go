package services

import (
	"github.com/dmolina/promptbox/internal/prompts"
)

// PromptServiceImpl implements PromptService over the flat prompts file
type PromptServiceImpl struct {
	path    string
	current *prompts.Config
}

// NewPromptService loads the template set from path (defaults apply when the
// file is missing or unreadable)
func NewPromptService(path string) *PromptServiceImpl {
	return &PromptServiceImpl{
		path:    path,
		current: prompts.Load(path),
	}
}

// Current returns the active template set. All five slots are always
// populated.
func (s *PromptServiceImpl) Current() *prompts.Config {
	return s.current
}

// Reload re-reads the templates from disk and makes them active
func (s *PromptServiceImpl) Reload() *prompts.Config {
	s.current = prompts.Load(s.path)
	return s.current
}

// Save persists the given template set and makes it active
func (s *PromptServiceImpl) Save(cfg *prompts.Config) error {
	if err := prompts.Save(cfg, s.path); err != nil {
		return err
	}
	s.current = cfg
	return nil
}
