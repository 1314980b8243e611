// Package config resolves roomscan configuration from the environment and
// the global config file, in that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/pmelby/roomscan/internal/sweep"
)

// Config is the resolved configuration for one invocation. Hours and
// MaxRooms are already clamped; Token may be empty (callers decide whether
// that is fatal).
type Config struct {
	Token    string
	Hours    int
	MaxRooms int
	Message  string
}

// env mirrors the environment variables roomscan reads.
type env struct {
	Token    string `envconfig:"WEBEX_TOKEN"`
	Hours    int    `envconfig:"ROOMSCAN_HOURS"`
	MaxRooms int    `envconfig:"ROOMSCAN_MAX_ROOMS"`
	Message  string `envconfig:"ROOMSCAN_MESSAGE"`
}

// GlobalConfig represents configuration stored in
// ~/.config/roomscan/config.yml.
type GlobalConfig struct {
	WebexToken      string `yaml:"webex_token,omitempty"`
	DefaultHours    int    `yaml:"default_hours,omitempty"`
	DefaultMaxRooms int    `yaml:"default_max_rooms,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "roomscan"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/roomscan/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// Load resolves configuration: environment first, then the global config
// file, then built-in defaults. Numeric knobs come back clamped.
func Load() (*Config, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	g, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:    e.Token,
		Hours:    e.Hours,
		MaxRooms: e.MaxRooms,
		Message:  e.Message,
	}
	if cfg.Token == "" {
		cfg.Token = g.WebexToken
	}
	if cfg.Hours == 0 {
		cfg.Hours = g.DefaultHours
	}
	if cfg.Hours == 0 {
		cfg.Hours = sweep.DefaultWindowHours
	}
	if cfg.MaxRooms == 0 {
		cfg.MaxRooms = g.DefaultMaxRooms
	}
	if cfg.MaxRooms == 0 {
		cfg.MaxRooms = sweep.DefaultMaxRooms
	}

	cfg.Hours = sweep.ClampHours(cfg.Hours)
	cfg.MaxRooms = sweep.ClampMaxRooms(cfg.MaxRooms)
	return cfg, nil
}
