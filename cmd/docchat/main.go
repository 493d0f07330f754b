// Command docchat is a terminal client for a document-chat service:
// upload documents, watch their ingestion, and ask questions grounded
// in the documents you select.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/gateway/httpgw"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := file.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	cfg, err := file.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	gateway, err := httpgw.NewClient(httpgw.Config{
		BaseURL:           cfg.GatewayURL,
		Timeout:           cfg.ChatTimeout.Std(),
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return fmt.Errorf("creating gateway client: %w", err)
	}

	tracker := services.NewJobTracker(gateway, services.TrackerConfig{
		PollInterval:    cfg.PollInterval.Std(),
		CallTimeout:     cfg.CallTimeout.Std(),
		PollDeadline:    cfg.PollDeadline.Std(),
		MaxPollFailures: cfg.MaxPollFailures,
	})
	defer tracker.Close()

	registry := services.NewDocumentRegistry(gateway, services.RegistryConfig{
		CallTimeout: cfg.CallTimeout.Std(),
	})
	chat := services.NewChatSession(gateway, services.ChatConfig{
		CallTimeout: cfg.ChatTimeout.Std(),
	})
	controller := services.NewSessionController(tracker, registry, chat, services.ControllerConfig{
		RefreshInterval: cfg.RefreshInterval.Std(),
	})

	cli.SetSessionConfig(&cli.SessionConfig{
		Controller: controller,
		Tracker:    tracker,
	})

	return cli.Execute()
}
