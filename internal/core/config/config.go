// Package config handles configuration loading and validation for skrive.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Mode selects the completion backend.
type Mode string

// Supported completion modes.
const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// IsValid checks if the mode is a supported mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeMock, ModeLive:
		return true
	default:
		return false
	}
}

// Defaults for the completion endpoint. The endpoint is a base URL; the
// client appends /chat/completions.
const (
	DefaultEndpoint       = "http://localhost:3000/api"
	DefaultModel          = "skrive-leif"
	DefaultAPIKeyEnv      = "SKRIVE_API_KEY"
	DefaultPromptTemplate = "{{ .Text }}"
	DefaultTimeout        = 2 * time.Minute
	DefaultServerAddr     = "127.0.0.1:8080"
)

// Config holds the application configuration.
type Config struct {
	Completion CompletionConfig `yaml:"completion" toml:"completion"`
	Review     ReviewConfig     `yaml:"review"     toml:"review"`
	Server     ServerConfig     `yaml:"server"     toml:"server"`
	DataDir    string           `yaml:"-"          toml:"-"` // set by caller, not from config file
}

// CompletionConfig configures the language-model endpoint.
type CompletionConfig struct {
	Mode           Mode          `yaml:"mode"            toml:"mode"`            // mock or live
	Endpoint       string        `yaml:"endpoint"        toml:"endpoint"`        // OpenAI-compatible base URL
	APIKey         string        `yaml:"api_key"         toml:"api_key"`         // bearer credential
	APIKeyEnv      string        `yaml:"api_key_env"     toml:"api_key_env"`     // env var consulted when api_key is empty
	Model          string        `yaml:"model"           toml:"model"`           // model name sent with each request
	SystemPrompt   string        `yaml:"system_prompt"   toml:"system_prompt"`   // optional system message
	PromptTemplate string        `yaml:"prompt_template" toml:"prompt_template"` // template for the user message
	Timeout        time.Duration `yaml:"timeout"         toml:"timeout"`         // HTTP client timeout
}

// Credential returns the configured API key, falling back to the
// environment variable named by APIKeyEnv.
func (c CompletionConfig) Credential() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}

// ReviewConfig configures the interactive review.
type ReviewConfig struct {
	Width           int   `yaml:"width"             toml:"width"`             // wrap width, 0 = terminal width
	HideRules       bool  `yaml:"hide_rules"        toml:"hide_rules"`        // hide style rules under suggestions
	AdvanceOnAccept *bool `yaml:"advance_on_accept" toml:"advance_on_accept"` // nil = true
}

// AdvanceAfterAccept reports whether accepting a suggestion moves to the next one.
func (r ReviewConfig) AdvanceAfterAccept() bool {
	return r.AdvanceOnAccept == nil || *r.AdvanceOnAccept
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Completion: CompletionConfig{
			Mode:           ModeLive,
			Endpoint:       DefaultEndpoint,
			APIKeyEnv:      DefaultAPIKeyEnv,
			Model:          DefaultModel,
			PromptTemplate: DefaultPromptTemplate,
			Timeout:        DefaultTimeout,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := decode(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Completion.Mode == "" {
		c.Completion.Mode = defaults.Completion.Mode
	}
	if c.Completion.Endpoint == "" {
		c.Completion.Endpoint = defaults.Completion.Endpoint
	}
	if c.Completion.Model == "" {
		c.Completion.Model = defaults.Completion.Model
	}
	if c.Completion.PromptTemplate == "" {
		c.Completion.PromptTemplate = defaults.Completion.PromptTemplate
	}
	if c.Completion.Timeout == 0 {
		c.Completion.Timeout = defaults.Completion.Timeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Completion.Mode.IsValid() {
		return fmt.Errorf("completion.mode %q is invalid (want %q or %q)", c.Completion.Mode, ModeMock, ModeLive)
	}

	if c.Completion.Mode == ModeLive && c.Completion.Endpoint == "" {
		return fmt.Errorf("completion.endpoint cannot be empty in live mode")
	}

	if c.Completion.Model == "" {
		return fmt.Errorf("completion.model cannot be empty")
	}

	if c.Completion.Timeout < 0 {
		return fmt.Errorf("completion.timeout cannot be negative")
	}

	if c.Review.Width < 0 {
		return fmt.Errorf("review.width cannot be negative")
	}

	return nil
}
