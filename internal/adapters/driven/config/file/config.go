// Package file provides the TOML-backed configuration for docchat.
// Configuration lives at ~/.docchat/config.toml and covers the gateway
// endpoint plus the session's timing knobs.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultDirName is the config directory under the user's home.
const DefaultDirName = ".docchat"

// configFileName is the file within the config directory.
const configFileName = "config.toml"

// Config holds the docchat client configuration. Durations are TOML
// strings in Go duration syntax ("2s", "10s", "10m").
type Config struct {
	// GatewayURL is the ingestion service base URL.
	GatewayURL string `toml:"gateway_url"`

	// PollInterval is the delay between job status queries.
	PollInterval duration `toml:"poll_interval"`

	// RefreshInterval is the period of the background document refresh.
	RefreshInterval duration `toml:"refresh_interval"`

	// PollDeadline is the maximum total polling duration per job.
	PollDeadline duration `toml:"poll_deadline"`

	// CallTimeout bounds upload, status, list and delete calls.
	CallTimeout duration `toml:"call_timeout"`

	// ChatTimeout bounds chat calls; answers are slower than the rest.
	ChatTimeout duration `toml:"chat_timeout"`

	// MaxPollFailures is the consecutive failed status queries tolerated
	// before a job is marked error.
	MaxPollFailures int `toml:"max_poll_failures"`

	// RequestsPerSecond is the outbound rate limit.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// duration wraps time.Duration with TOML string encoding.
type duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// MarshalText encodes as a Go duration string.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped time.Duration.
func (d duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		GatewayURL:        "http://localhost:8000",
		PollInterval:      duration(2 * time.Second),
		RefreshInterval:   duration(10 * time.Second),
		PollDeadline:      duration(10 * time.Minute),
		CallTimeout:       duration(30 * time.Second),
		ChatTimeout:       duration(120 * time.Second),
		MaxPollFailures:   5,
		RequestsPerSecond: 10,
	}
}

// DefaultDir returns ~/.docchat, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, DefaultDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the config file from configDir, falling back to defaults
// for a missing file and for any unset field.
func Load(configDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(configDir, configFileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the config file to configDir.
func Save(configDir string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	path := filepath.Join(configDir, configFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values with defaults so a sparse file
// never produces zero timeouts.
func (c *Config) fillDefaults() {
	def := Default()
	if c.GatewayURL == "" {
		c.GatewayURL = def.GatewayURL
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = def.RefreshInterval
	}
	if c.PollDeadline <= 0 {
		c.PollDeadline = def.PollDeadline
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = def.CallTimeout
	}
	if c.ChatTimeout <= 0 {
		c.ChatTimeout = def.ChatTimeout
	}
	if c.MaxPollFailures <= 0 {
		c.MaxPollFailures = def.MaxPollFailures
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = def.RequestsPerSecond
	}
}
