package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmolina/promptbox/internal/config"
	"github.com/dmolina/promptbox/internal/llm"
	"github.com/dmolina/promptbox/internal/services"
	"github.com/dmolina/promptbox/internal/tui"
	"github.com/dmolina/promptbox/internal/version"
)

func main() {
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/promptbox/config.json)")
	inboxPathFlag := flag.String("inbox", "", "Path to the JSON inbox record file (overrides config)")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Run with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --inbox ./mock_inbox.json # Use a specific record file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version                # Show version information\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PROMPTBOX_CONFIG   Override default config file path\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY     Credential for the openai provider\n")
		fmt.Fprintf(os.Stderr, "  MODEL_NAME         Model identifier when not set in the config file\n\n")
		fmt.Fprintf(os.Stderr, "For all other settings (LLM provider, prompts path, etc.), edit the config file.\n")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	configPath := getConfigPath(*configPathFlag)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: could not load configuration: %v", err)
		}
		cfg = config.DefaultConfig()
		cfg.ResolveCredential()
	}
	if *inboxPathFlag != "" {
		cfg.Inbox = *inboxPathFlag
	}

	// Initialize the LLM provider. A missing credential is not fatal: the
	// gateway degrades to inline "not configured" messages.
	provider, err := llm.NewProviderFromConfig(
		cfg.LLM.Provider, cfg.LLM.Endpoint, cfg.LLM.Region, cfg.LLM.Model,
		cfg.GetLLMTimeout(), cfg.LLM.APIKey)
	if err != nil {
		log.Printf("Warning: could not initialize LLM provider (%s): %v", cfg.LLM.Provider, err)
		provider = nil
	}

	gateway := services.NewGateway(provider)
	promptSvc := services.NewPromptService(cfg.Prompts)
	pipeline := services.NewPipeline(gateway, promptSvc)
	agent := services.NewAgent(gateway, pipeline, promptSvc)
	inboxSvc := services.NewInboxService(cfg.Inbox, pipeline)

	app := tui.NewApp(cfg, gateway, pipeline, agent, inboxSvc, promptSvc)
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// getConfigPath resolves the config file path: flag, then environment, then
// the default location.
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("PROMPTBOX_CONFIG"); env != "" {
		return env
	}
	return config.DefaultConfigPath()
}
