package cli

import (
	"testing"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/gateway/memory"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
)

// setupTestSession wires the commands to real services over the
// in-memory gateway and restores the previous configuration afterwards.
func setupTestSession(t *testing.T) *memory.Gateway {
	t.Helper()

	gw := memory.NewGateway()
	tracker := services.NewJobTracker(gw, services.TrackerConfig{
		PollInterval: 5 * time.Millisecond,
	})
	registry := services.NewDocumentRegistry(gw, services.RegistryConfig{})
	chat := services.NewChatSession(gw, services.ChatConfig{})
	controller := services.NewSessionController(tracker, registry, chat, services.ControllerConfig{})

	previous := sessionConfig
	SetSessionConfig(&SessionConfig{Controller: controller, Tracker: tracker})
	t.Cleanup(func() {
		controller.Close()
		sessionConfig = previous
	})

	return gw
}
