package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside a data directory.
const FileName = "fechamento.yaml"

// Config represents the top-level fechamento.yaml configuration.
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Import  ImportConfig  `yaml:"import"`
}

// ProfileConfig identifies the worker the data belongs to.
type ProfileConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// StoreConfig points at the SQLite database file, relative to the data
// directory unless absolute.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ImportConfig controls statement import behavior.
type ImportConfig struct {
	Dir       string `yaml:"dir"`
	DefaultID int64  `yaml:"default_account_id,omitempty"`
}

// Load reads a fechamento.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default(profileName string) *Config {
	return &Config{
		Profile: ProfileConfig{
			Name:     profileName,
			Currency: "BRL",
		},
		Store: StoreConfig{
			Path: "fechamento.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Import: ImportConfig{
			Dir: "import",
		},
	}
}
