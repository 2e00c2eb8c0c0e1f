package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPlayerBinary overrides the player binary, taking precedence over
// the config file. Kept for compatibility with existing installations.
const EnvPlayerBinary = "MUSICHUB_MPV_EXE"

// Config represents the optional top-level config.yml. Every field has a
// working default; a missing file is a valid configuration.
type Config struct {
	Version string        `yaml:"version,omitempty"`
	Player  PlayerConfig  `yaml:"player,omitempty"`
	Events  *EventsConfig `yaml:"events,omitempty"`
	Tools   *ToolsConfig  `yaml:"tools,omitempty"`
}

// PlayerConfig controls how player processes are launched.
type PlayerConfig struct {
	Binary    string   `yaml:"binary,omitempty"`     // player executable (default: mpv from PATH)
	Video     bool     `yaml:"video,omitempty"`      // keep video output (default: audio only)
	ExtraArgs []string `yaml:"extra_args,omitempty"` // appended verbatim to the launch argv
}

// EventsConfig overrides where players write lifecycle events.
type EventsConfig struct {
	File string `yaml:"file,omitempty"`
}

// ToolsConfig overrides external helper tools.
type ToolsConfig struct {
	Ytdlp string `yaml:"ytdlp,omitempty"` // stream resolver binary (default: discovered)
}

// Validate performs strict validation on the configuration
func (c *Config) Validate() error {
	if c.Version != "" && c.Version != "1" {
		return fmt.Errorf("unsupported version: %s (expected: 1)", c.Version)
	}

	for _, arg := range c.Player.ExtraArgs {
		// The control socket is derived per slot; a hardcoded one would
		// detach every player from its registry entry.
		if strings.HasPrefix(arg, "--input-ipc-server") {
			return fmt.Errorf("player.extra_args must not set --input-ipc-server (the control socket is managed per slot)")
		}
	}

	if c.Tools != nil && c.Tools.Ytdlp != "" {
		if _, err := os.Stat(c.Tools.Ytdlp); os.IsNotExist(err) {
			return fmt.Errorf("tools.ytdlp does not exist: %s", c.Tools.Ytdlp)
		}
	}

	return nil
}

// PlayerBinary resolves the configured player binary, if any. The
// MUSICHUB_MPV_EXE environment variable wins over the config file; an
// empty result means "search PATH".
func (c *Config) PlayerBinary() string {
	if exe := os.Getenv(EnvPlayerBinary); exe != "" {
		return exe
	}
	return c.Player.Binary
}

// EventSink resolves where launched players should append lifecycle
// events, falling back to the default location under paths.
func (c *Config) EventSink(paths Paths) string {
	if c.Events != nil && c.Events.File != "" {
		return c.Events.File
	}
	return paths.EventsFile
}

// YtdlpHint returns the configured stream resolver path, or empty to
// let the launcher discover one.
func (c *Config) YtdlpHint() string {
	if c.Tools != nil {
		return c.Tools.Ytdlp
	}
	return ""
}

// Load reads and validates config.yml from the given paths. A missing
// file yields the default configuration.
func Load(paths Paths) (*Config, error) {
	data, err := os.ReadFile(paths.ConfigFile)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
