package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/skrive/internal/core/completion"
	"github.com/colonyops/skrive/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Mode       string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "skrive", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "skrive")
}

// config returns the loaded config, or defaults when a command runs without
// the root Before hook (as in tests).
func (f *Flags) config() *config.Config {
	if f.Config != nil {
		return f.Config
	}
	cfg := config.DefaultConfig()
	cfg.DataDir = f.DataDir
	return &cfg
}

// completer builds the completion backend selected by config.
func (f *Flags) completer() (completion.Completer, error) {
	return completion.New(f.config().Completion)
}
