package console

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/cdinventory/persist"
)

// Config holds initialization parameters for a console session.
type Config struct {
	Persist   persist.Config `json:"persist" yaml:"persist"`
	Observers []string       `json:"observers,omitempty" yaml:"observers,omitempty"` // Registered observer names.
}

// DefaultConfig returns a Config that stores the inventory in the default
// file and logs events through the "slog" observer.
func DefaultConfig() Config {
	return Config{
		Persist:   persist.DefaultConfig(),
		Observers: []string{"slog"},
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	c.Persist.Merge(&source.Persist)

	if len(source.Observers) > 0 {
		c.Observers = source.Observers
	}
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. Files ending in .yaml or .yml are parsed as YAML,
// anything else as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
