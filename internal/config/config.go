// Package config loads the daemon configuration from a TOML file, applies
// environment overrides, and validates the command template at startup so a
// malformed template never reaches request handling.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cliproxy-dev/cliproxy/internal/command"
)

type AgentConfig struct {
	// ID is the model identifier advertised by /v1/models and used when a
	// request leaves the model field empty.
	ID string `toml:"id"`
	// Command is the command template; see internal/command for placeholder
	// semantics.
	Command string `toml:"command"`
	// Debug logs the exact prepared command before each execution.
	Debug bool `toml:"debug"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

type HistoryConfig struct {
	// Path is the sqlite file recording completions. Empty disables history,
	// which is the default: the proxy persists nothing unless asked to.
	Path string `toml:"path"`
}

type Config struct {
	Listen  string        `toml:"listen"`
	Agent   AgentConfig   `toml:"agent"`
	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
}

func defaults() Config {
	return Config{
		Listen: "127.0.0.1:8001",
		Agent: AgentConfig{
			ID:      "cli-agent",
			Command: "qwen {prompt}",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Environment overrides apply after the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, err
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("CLIPROXY_LISTEN"); ok {
		cfg.Listen = v
	}
	if v, ok := os.LookupEnv("CLIPROXY_COMMAND"); ok {
		cfg.Agent.Command = v
	}
	if v, ok := os.LookupEnv("CLIPROXY_DEBUG"); ok {
		cfg.Agent.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen must not be empty")
	}
	if c.Agent.ID == "" {
		return errors.New("agent.id must not be empty")
	}
	if strings.TrimSpace(c.Agent.Command) == "" {
		return errors.New("agent.command must not be empty")
	}
	if err := command.New(c.Agent.Command).Validate(); err != nil {
		return fmt.Errorf("agent.command: %w", err)
	}
	return nil
}
