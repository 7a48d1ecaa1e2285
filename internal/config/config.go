package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LLMConfig holds all LLM-related configuration
type LLMConfig struct {
	Provider string `json:"provider"` // openai, ollama, bedrock
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
	Region   string `json:"region"` // For AWS Bedrock
	APIKey   string `json:"api_key"`
	Timeout  string `json:"timeout"`
}

// Config holds all configuration for the promptbox application
type Config struct {
	// Inbox is the path to the JSON record file with the mock inbox
	Inbox string `json:"inbox"`

	// Prompts is the path to the editable prompt templates file
	Prompts string `json:"prompts"`

	// LLM configuration (unified)
	LLM LLMConfig `json:"llm"`

	// Logging
	LogFile string `json:"log_file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	dir := DefaultConfigDir()
	return &Config{
		Inbox:   filepath.Join(dir, "mock_inbox.json"),
		Prompts: filepath.Join(dir, "prompts.json"),
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  "60s",
		},
		LogFile: filepath.Join(dir, "promptbox.log"),
	}
}

// DefaultConfigDir returns ~/.config/promptbox (or a relative fallback when
// the home directory cannot be resolved)
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".promptbox"
	}
	return filepath.Join(home, ".config", "promptbox")
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// LoadConfig loads configuration from a JSON file, filling unset fields with
// defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides resolves the credential from the environment when the
// config file does not carry one
func (c *Config) applyEnvOverrides() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.LLM.Model == "" {
		if m := os.Getenv("MODEL_NAME"); m != "" {
			c.LLM.Model = m
		}
	}
}

// ResolveCredential applies environment fallbacks on a default config too
func (c *Config) ResolveCredential() {
	c.applyEnvOverrides()
}

// Save writes the configuration to a JSON file
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

// GetLLMTimeout parses the configured timeout, defaulting to 60s
func (c *Config) GetLLMTimeout() time.Duration {
	if c.LLM.Timeout == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}
