package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cardgrid/cardgrid/pkg/pipeline"
)

// Config holds user preferences loaded from the config file. Every field is
// optional; zero values fall back to the built-in defaults.
type Config struct {
	// Canvas defaults for layout commands.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// MaxArrangements caps how many arrangements a command may materialize.
	MaxArrangements int `toml:"max_arrangements"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// Server holds serve-mode settings.
	Server ServerConfig `toml:"server"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Listen   string      `toml:"listen"`
	RedisURL string      `toml:"redis_url"`
	Mongo    MongoConfig `toml:"mongo"`
}

// MongoConfig configures the layout document store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:           pipeline.DefaultWidth,
		Height:          pipeline.DefaultHeight,
		MaxArrangements: pipeline.DefaultMaxArrangements,
		Server: ServerConfig{
			Listen: ":8080",
			Mongo: MongoConfig{
				Database:   appName,
				Collection: "layouts",
			},
		},
	}
}

// LoadConfig reads the config file at path, or the default location when path
// is empty. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return DefaultConfig(), nil
		}
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// configPath returns the config file location using the XDG standard
// (~/.config/cardgrid/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
