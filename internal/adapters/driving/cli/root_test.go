package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_HasCommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "upload")
	assert.Contains(t, commandNames, "ask")
	assert.Contains(t, commandNames, "docs")
	assert.Contains(t, commandNames, "watch")
	assert.Contains(t, commandNames, "tui")
	assert.Contains(t, commandNames, "version")
}

func TestSetSessionConfig(t *testing.T) {
	previous := sessionConfig
	defer func() { sessionConfig = previous }()

	config := &SessionConfig{}
	SetSessionConfig(config)

	assert.Same(t, config, sessionConfig)
}

func TestCommandsFailWithoutSession(t *testing.T) {
	previous := sessionConfig
	sessionConfig = nil
	defer func() { sessionConfig = previous }()

	err := runDocsList(docsListCmd, nil)

	assert.EqualError(t, err, "session not configured")
}
