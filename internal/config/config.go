package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendDisk   = "disk"
)

// ErrInvalidBackend is returned for an unknown store.backend.
var ErrInvalidBackend = errors.New("invalid store backend")

// DefaultDir is where file-backed stores live unless store.path says otherwise.
const DefaultDir = "~/.todolist"

// Config defines application configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables.
// path overrides TODO_CONFIG_PATH when non-empty.
func Load(path string) (Config, error) {
	cfg := Config{
		Store: StoreConfig{
			Backend: BackendMemory,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}

	if path == "" {
		path = os.Getenv("TODO_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if backend := os.Getenv("TODO_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if storePath := os.Getenv("TODO_STORE_PATH"); storePath != "" {
		cfg.Store.Path = storePath
	}
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("TODO_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	return cfg, nil
}

// Validate checks the backend name and expands ~ in paths.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite, BackendDisk:
	default:
		return fmt.Errorf("%w: %q (want %s, %s or %s)", ErrInvalidBackend, c.Store.Backend, BackendMemory, BackendSQLite, BackendDisk)
	}

	var err error
	if c.Store.Path, err = expand(c.Store.Path); err != nil {
		return fmt.Errorf("store path: %w", err)
	}
	if c.Log.Path, err = expand(c.Log.Path); err != nil {
		return fmt.Errorf("log path: %w", err)
	}
	return nil
}

// StorePath returns store.path or the backend's default location.
func (c Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	switch c.Store.Backend {
	case BackendSQLite:
		return expand(filepath.Join(DefaultDir, "todo.db"))
	case BackendDisk:
		return expand(filepath.Join(DefaultDir, "items"))
	}
	return "", nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return homedir.Expand(path)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
