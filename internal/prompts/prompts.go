package prompts

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds the five prompt templates steering every model-backed
// operation. All behavior lives in these editable strings; the code only
// routes them. Every slot is always populated after Load.
type Config struct {
	Categorization string `json:"categorization"`
	ActionItem     string `json:"action_item"`
	AutoReply      string `json:"auto_reply"`
	Summary        string `json:"summary"`
	GeneralAgent   string `json:"general_agent"`
}

// Defaults returns the built-in template set used when no prompts file
// exists or when it cannot be parsed.
func Defaults() *Config {
	return &Config{
		Categorization: "Categorize this email into one of: Important, Newsletter, Spam, To-Do. " +
			"To-Do emails must include a direct request requiring user action. " +
			"Respond with only the category name.",
		ActionItem: `Extract tasks from the email. Respond in JSON list format: [ { "task": "...", "deadline": "..." } ]. If no tasks, return an empty list [].`,
		AutoReply: "If the email is a meeting request, draft a polite, concise reply asking for an agenda " +
			"and proposing 1-2 time slots. Maintain a professional tone.",
		Summary: "Summarize the following email in 2-3 bullet points, focusing on key information and any required actions.",
		GeneralAgent: "You are an Email Productivity Agent helping the user manage their inbox. " +
			"Always use the stored prompts as behavioral instructions whenever relevant.",
	}
}

// Load reads the prompts file at path. A missing or unreadable file falls
// back to the built-in defaults; individual missing keys are filled per-slot
// so all five templates are always present.
func Load(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read prompts file %s: %v", path, err)
		}
		return Defaults()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Warning: could not parse prompts file %s: %v", path, err)
		return Defaults()
	}

	cfg.fillMissing()
	return &cfg
}

// Save writes the five canonical template keys to path, creating the parent
// directory if needed.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create prompts directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize prompts: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write prompts file: %w", err)
	}
	return nil
}

// fillMissing resolves empty slots to their defaults so a partial prompts
// file never leaves a slot blank.
func (c *Config) fillMissing() {
	def := Defaults()
	if c.Categorization == "" {
		c.Categorization = def.Categorization
	}
	if c.ActionItem == "" {
		c.ActionItem = def.ActionItem
	}
	if c.AutoReply == "" {
		c.AutoReply = def.AutoReply
	}
	if c.Summary == "" {
		c.Summary = def.Summary
	}
	if c.GeneralAgent == "" {
		c.GeneralAgent = def.GeneralAgent
	}
}
