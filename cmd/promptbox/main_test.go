package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmolina/promptbox/internal/config"
)

func TestGetConfigPath_FlagWins(t *testing.T) {
	t.Setenv("PROMPTBOX_CONFIG", "/env/config.json")
	assert.Equal(t, "/flag/config.json", getConfigPath("/flag/config.json"))
}

func TestGetConfigPath_EnvFallback(t *testing.T) {
	t.Setenv("PROMPTBOX_CONFIG", "/env/config.json")
	assert.Equal(t, "/env/config.json", getConfigPath(""))
}

func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("PROMPTBOX_CONFIG", "")
	assert.Equal(t, config.DefaultConfigPath(), getConfigPath(""))
}
