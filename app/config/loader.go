package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultsYAML []byte

// Defaults returns the built-in settings every other config falls back to.
func Defaults() *Config {
	values, err := parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in defaults: %v", err))
	}
	return New(values, nil)
}

// DefaultsYAML returns the commented default settings document.
func DefaultsYAML() []byte {
	return defaultsYAML
}

// LoadFile reads a YAML settings file. A missing file yields an empty
// config with the given parent.
func LoadFile(path string, parent *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(nil, parent), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	values, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	return New(values, parent), nil
}

// WriteFile stores the config's own values as YAML.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(map[string]any(c.values))
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func parse(data []byte) (Values, error) {
	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if values == nil {
		values = Values{}
	}
	return values, nil
}
